package alerts

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
)

// deliver sends webhook notifications for a to all configured targets.
// Errors are logged but do not affect the caller.
func (e *Engine) deliver(a *Alert) {
	for _, wh := range e.webhooks {
		url := wh.URL()
		if url == "" {
			continue
		}

		var err error
		switch wh.Type {
		case "slack":
			err = e.sendSlack(url, a)
		case "http":
			err = e.sendHTTP(url, a)
		default:
			slog.Warn("alerts: unknown webhook type — skipping", "type", wh.Type)
			continue
		}

		if err != nil {
			slog.Error("alerts: webhook delivery failed",
				"type", wh.Type,
				"rule", a.RuleName,
				"err", err,
			)
		} else {
			slog.Debug("alerts: webhook delivered",
				"type", wh.Type,
				"rule", a.RuleName,
			)
		}
	}
}

// sendSlack posts a Slack incoming-webhook message.
func (e *Engine) sendSlack(url string, a *Alert) error {
	icon := ":warning:"
	if a.State == "resolved" {
		icon = ":white_check_mark:"
	}
	payload := map[string]string{
		"text": fmt.Sprintf("%s *%s* (%s) on `%s`: %s",
			icon, a.RuleName, a.State, a.VehicleID, a.Message),
	}
	return e.post(url, payload)
}

// sendHTTP posts the raw Alert JSON to a generic HTTP endpoint.
func (e *Engine) sendHTTP(url string, a *Alert) error {
	return e.post(url, a)
}

func (e *Engine) post(url string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	resp, err := e.client.Post(url, "application/json", bytes.NewReader(body))
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("webhook returned status %d", resp.StatusCode)
	}
	return nil
}
