package dashboard

// exists guards every write; a missing region is skipped silently
func (d *Dashboard) exists(target string) bool {
	if d.surface.Exists(target) {
		return true
	}

	d.logger.WithField("target", target).Debug("View target missing, render skipped")
	if d.metrics != nil {
		d.metrics.MissingTargets.WithLabelValues(target).Inc()
	}
	return false
}

func (d *Dashboard) drawChart(target string, build func() any) {
	if !d.exists(target) {
		return
	}
	if _, err := d.coord.Render(target, build); err != nil {
		d.logger.WithField("target", target).WithError(err).Warn("Chart render failed")
	}
}

// placeholder disposes any chart bound to target and writes markup in its place
func (d *Dashboard) placeholder(target, html string) {
	if !d.exists(target) {
		return
	}
	d.coord.Dispose(target)
	d.surface.SetHTML(target, html)
}

func (d *Dashboard) writeMarkup(target string, build func() (string, error)) {
	if !d.exists(target) {
		return
	}
	html, err := build()
	if err != nil {
		d.logger.WithField("target", target).WithError(err).Warn("Markup render failed")
		return
	}
	d.surface.SetHTML(target, html)
}

func (d *Dashboard) setHTML(target, html string) {
	if d.exists(target) {
		d.surface.SetHTML(target, html)
	}
}

func (d *Dashboard) setText(target, text string) {
	if d.exists(target) {
		d.surface.SetText(target, text)
	}
}

func (d *Dashboard) setVisible(target string, visible bool) {
	if d.exists(target) {
		d.surface.SetVisible(target, visible)
	}
}

func (d *Dashboard) setActive(target string, active bool) {
	if d.exists(target) {
		d.surface.SetActive(target, active)
	}
}
