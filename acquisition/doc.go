// Package acquisition provides the data acquisition client used by
// experiment tasks.
//
// A Client reads sample frames from a Device on one goroutine and processes
// them on another: each record is appended to a SQLite-backed Buffer for
// querying and streamed to a raw-data CSV file. The first record with a
// positive trigger channel marks the calibration offset, the alignment point
// between display triggers and acquired data.
//
//	client, _ := acquisition.NewClient(acquisition.ClientConfig{Device: dev})
//	client.StartAcquisition(ctx)
//	defer client.StopAcquisition()
//
//	records, _ := client.GetData()
package acquisition
