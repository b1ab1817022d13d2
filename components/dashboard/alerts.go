package dashboard

// AlertView is an alert decorated for the drawer.
type AlertView struct {
	Alert
	Color     string `json:"color"`
	Icon      string `json:"icon"`
	Highlight bool   `json:"highlight"`
}

// AlertDrawer is the alert panel state handed to templates.
type AlertDrawer struct {
	Open   bool        `json:"open"`
	Count  int         `json:"count"`
	Alerts []AlertView `json:"alerts"`
}

// BuildAlertDrawer decorates alerts in fixture order.
func BuildAlertDrawer(alerts []Alert, open bool) AlertDrawer {
	views := make([]AlertView, 0, len(alerts))
	for _, alert := range alerts {
		color, icon := severityStyle(alert.Severity)
		views = append(views, AlertView{
			Alert:     alert,
			Color:     color,
			Icon:      icon,
			Highlight: alert.Priority == PriorityHigh,
		})
	}
	return AlertDrawer{
		Open:   open,
		Count:  len(views),
		Alerts: views,
	}
}

func severityStyle(severity Severity) (color, icon string) {
	switch severity {
	case SeverityError:
		return "rose", "alert-circle"
	case SeverityWarning:
		return "amber", "alert-triangle"
	default:
		return "sky", "info"
	}
}
