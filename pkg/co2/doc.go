// Package co2 turns noisy raw samples of an MG811 CO2 sensor, read through
// an MCP3008 ADC, into a stable concentration reading.
//
// A Sampler pulls raw samples into the SampleRing of an Averager as fast
// as the ADC allows. Consumers call Averager.ComputeReading on their own
// schedule, which averages the ring and converts the mean into ppm with
// the log-linear curve of the current Calibration.
package co2
