// Package monitor samples host resource usage and keeps a bounded history of it.
//
// # Key Components
//
//	Sampler       - Source of raw readings (HostSampler reads the local host via gopsutil)
//	Monitor       - Takes snapshots according to a Policy and records them in History
//	History       - Ring buffer of MonitoringSample values with average and peak queries
//	Policy        - Sampling interval, history size, enabled resources and thresholds
//
// # Sampling Flow
//
// Sampling is consumer driven. Either call Monitor.Sample directly, or start
// Monitor.Run which samples once per Policy.Interval and publishes every
// snapshot on a channel until its context is cancelled:
//
//  1. Run's ticker fires
//  2. Sample queries every enabled resource on the Sampler
//  3. The snapshot's MonitoringSample projection is pushed into History
//  4. The snapshot is sent to the consumer
//
// Threshold alerts are evaluated separately with CheckThresholds, so a
// consumer can decide when and how to raise them.
//
// # Concurrency
//
// History is guarded by an RWMutex so readers (a dashboard) can run while the
// scheduler writes. Sample itself assumes a single writer: callers that sample
// from several goroutines must serialize those calls.
package monitor
