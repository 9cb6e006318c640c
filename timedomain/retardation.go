// Package timedomain turns the frequency-domain radiation coefficients
// postprocess.ComputeRadiation produces into the memory-effect kernel a
// time-domain body-motion simulation needs, without performing the
// convolution itself: this core stops at producing K(t), per the open
// question resolution that time-domain simulation is a downstream
// consumer of frequency outputs rather than a mode this core runs.
//
// Named after original_source/bem/src/time_domain.rs's ImpulseResponseData
// and its calculate_impulse_responses/MemoryKernel (Retardation variant),
// generalised from that file's simplified placeholder response (a
// closed-form 1/(1+omega^2) transfer function) to the actual Ogilvie (1964)
// retardation function built from a solved damping curve.
// Copyright (C) 2025 Capytaine Contributors
// See LICENSE file at <https://github.com/capytaine/capytaine>
package timedomain

import (
	"math"
	"sort"

	"github.com/capytaine/capytaine/go-capytaine/bem-core/bemerr"
)

// DampingCurve is one mode pair's damping B_mn(omega) sampled over an
// arbitrary, not necessarily regular, frequency grid — the shape
// postprocess.ComputeRadiation naturally produces one frequency at a time.
type DampingCurve struct {
	Omega   []float64
	Damping []float64
}

func (c DampingCurve) validate() error {
	if len(c.Omega) < 2 || len(c.Omega) != len(c.Damping) {
		return &bemerr.InvalidParameters{Reason: "damping curve needs at least two matched (omega, damping) samples"}
	}
	s := c.sorted()
	for i := 1; i < len(s.Omega); i++ {
		if s.Omega[i] <= s.Omega[i-1] {
			return &bemerr.InvalidParameters{Reason: "damping curve frequencies must be distinct"}
		}
	}
	return nil
}

// sorted returns a copy of c with samples ordered by ascending frequency,
// since RetardationFunction integrates over the grid in order.
func (c DampingCurve) sorted() DampingCurve {
	idx := make([]int, len(c.Omega))
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return c.Omega[idx[i]] < c.Omega[idx[j]] })

	out := DampingCurve{Omega: make([]float64, len(idx)), Damping: make([]float64, len(idx))}
	for i, j := range idx {
		out.Omega[i] = c.Omega[j]
		out.Damping[i] = c.Damping[j]
	}
	return out
}

// RetardationFunction evaluates the Ogilvie (1964) retardation (memory)
// kernel K(t) = (2/pi) integral_0^inf B(omega) cos(omega t) d(omega), using
// trapezoidal quadrature over the curve's (possibly irregular) frequency
// grid. The integral is truncated to the curve's sampled range; callers
// supplying a grid that does not reach toward the curve's high-frequency
// plateau will underestimate K for small t.
func RetardationFunction(curve DampingCurve, t float64) (float64, error) {
	if err := curve.validate(); err != nil {
		return 0, err
	}
	c := curve.sorted()

	integral := 0.0
	for i := 1; i < len(c.Omega); i++ {
		w0, w1 := c.Omega[i-1], c.Omega[i]
		f0 := c.Damping[i-1] * math.Cos(w0*t)
		f1 := c.Damping[i] * math.Cos(w1*t)
		integral += 0.5 * (f0 + f1) * (w1 - w0)
	}
	return (2.0 / math.Pi) * integral, nil
}

// RetardationSeries evaluates RetardationFunction at every sample of times,
// the shape a time-stepping consumer wants for its memory-effect
// convolution (original_source's ImpulseResponseData.time_vector paired
// with one DOF pair's response series).
func RetardationSeries(curve DampingCurve, times []float64) ([]float64, error) {
	if err := curve.validate(); err != nil {
		return nil, err
	}
	out := make([]float64, len(times))
	for i, t := range times {
		k, err := RetardationFunction(curve, t)
		if err != nil {
			return nil, err
		}
		out[i] = k
	}
	return out, nil
}

// DefaultTimeGrid builds the time vector original_source's
// calculate_impulse_responses derives from the frequency range: four
// periods of the lowest sampled frequency, ten points per period of the
// highest.
func DefaultTimeGrid(curve DampingCurve) ([]float64, error) {
	if err := curve.validate(); err != nil {
		return nil, err
	}
	omegaMin := curve.Omega[0]
	omegaMax := curve.Omega[len(curve.Omega)-1]
	for _, w := range curve.Omega {
		if w < omegaMin {
			omegaMin = w
		}
		if w > omegaMax {
			omegaMax = w
		}
	}

	tMax := 4.0 * 2.0 * math.Pi / omegaMin
	dt := (2.0 * math.Pi / omegaMax) / 10.0
	if dt <= 0 {
		return nil, &bemerr.InvalidParameters{Reason: "time grid step collapsed to zero"}
	}

	n := int(tMax / dt)
	if n < 1 {
		n = 1
	}
	times := make([]float64, n)
	for i := range times {
		times[i] = float64(i) * dt
	}
	return times, nil
}

// AddedMassAtInfinity recovers A(infinity) from a finite-frequency added
// mass sample and its retardation function via
// A(inf) = A(omega) + (1/omega) integral_0^inf K(t) sin(omega t) dt,
// evaluated on the same time grid DefaultTimeGrid proposes. The result is
// in principle independent of which sampled omega is used; callers
// wanting a consistency check should evaluate it at more than one
// frequency and compare.
func AddedMassAtInfinity(curve DampingCurve, addedMassAtOmega, omega float64) (float64, error) {
	if omega <= 0 {
		return 0, &bemerr.InvalidParameters{Reason: "added mass at infinity requires omega > 0"}
	}
	times, err := DefaultTimeGrid(curve)
	if err != nil {
		return 0, err
	}
	kt, err := RetardationSeries(curve, times)
	if err != nil {
		return 0, err
	}

	integral := 0.0
	for i := 1; i < len(times); i++ {
		f0 := kt[i-1] * math.Sin(omega*times[i-1])
		f1 := kt[i] * math.Sin(omega*times[i])
		integral += 0.5 * (f0 + f1) * (times[i] - times[i-1])
	}
	return addedMassAtOmega + integral/omega, nil
}
