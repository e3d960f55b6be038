package sim

import (
	"slices"
	"sync"

	"codeberg.org/mutker/hwcaps/internal/backend"
)

type toggle struct {
	mu      sync.Mutex
	enabled bool
}

func (t *toggle) IsEnabled() (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled, nil
}

func (t *toggle) SetEnabled(enabled bool) (bool, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.enabled = enabled
	return true, nil
}

type calibration struct {
	mu      sync.Mutex
	profile CalibrationProfile
}

func (c *calibration) Calibration() ([]int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return []int{c.profile.RGB[0], c.profile.RGB[1], c.profile.RGB[2]}, nil
}

func (c *calibration) SetCalibration(rgb [3]int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, v := range rgb {
		if v < c.profile.Min || v > c.profile.Max {
			return false, nil
		}
	}
	c.profile.RGB = rgb
	return true, nil
}

func (c *calibration) MinValue() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Min, nil
}

func (c *calibration) MaxValue() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Max, nil
}

type displayModes struct {
	mu      sync.Mutex
	profile DisplayModesProfile
}

func (d *displayModes) DisplayModes() ([]backend.DisplayMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return slices.Clone(d.profile.Modes), nil
}

func (d *displayModes) find(id *int) *backend.DisplayMode {
	if id == nil {
		return nil
	}
	for _, mode := range d.profile.Modes {
		if mode.ID == *id {
			return &mode
		}
	}
	return nil
}

func (d *displayModes) CurrentDisplayMode() (*backend.DisplayMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(d.profile.Current), nil
}

func (d *displayModes) DefaultDisplayMode() (*backend.DisplayMode, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.find(d.profile.Default), nil
}

func (d *displayModes) SetDisplayMode(id int, makeDefault bool) (bool, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.find(&id) == nil {
		return false, nil
	}
	d.profile.Current = &id
	if makeDefault {
		def := id
		d.profile.Default = &def
	}
	return true, nil
}

type colorBalance struct {
	mu      sync.Mutex
	profile ColorBalanceProfile
}

func (c *colorBalance) ColorBalanceRange() (backend.Range[int], error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Range, nil
}

func (c *colorBalance) ColorBalance() (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.profile.Value, nil
}

func (c *colorBalance) SetColorBalance(value int) (bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !c.profile.Range.Contains(value) {
		return false, nil
	}
	c.profile.Value = value
	return true, nil
}

type pictureAdjustment struct {
	mu      sync.Mutex
	profile PictureAdjustmentProfile
}

func (p *pictureAdjustment) PictureAdjustment() (backend.HSIC, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.Current, nil
}

func (p *pictureAdjustment) DefaultPictureAdjustment() (backend.HSIC, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.Default, nil
}

func (p *pictureAdjustment) SetPictureAdjustment(hsic backend.HSIC) (bool, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.profile.Current = hsic
	return true, nil
}

func (p *pictureAdjustment) Ranges() (backend.PictureAdjustmentRanges, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.profile.Ranges, nil
}

type gestures struct {
	mu   sync.Mutex
	list []backend.TouchscreenGesture
}

func (g *gestures) SupportedGestures() ([]backend.TouchscreenGesture, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return slices.Clone(g.list), nil
}

func (g *gestures) SetGestureEnabled(gesture backend.TouchscreenGesture, enabled bool) (bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	for i := range g.list {
		if g.list[i].ID == gesture.ID {
			g.list[i].Enabled = enabled
			return true, nil
		}
	}
	return false, nil
}
