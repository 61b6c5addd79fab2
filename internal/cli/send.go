package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

func newSendCommand(a *app) *cobra.Command {
	var (
		file  string
		event string
	)

	cmd := &cobra.Command{
		Use:   "send",
		Short: "Deliver a webhook payload to the index",
		Long: `Post a webhook body to /api/webhook exactly as the CMS would.

The body is read from --file, or from stdin when --file is "-" or omitted.
--event overrides the event name in the payload ("event" or "event_type").

Examples:
  indexctl send --file publish.json
  indexctl send --file publish.json --event entry.deleted
  cat payload.json | indexctl send`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := readBody(cmd, file)
			if err != nil {
				return err
			}
			if event != "" {
				if body, err = overrideEvent(body, event); err != nil {
					return err
				}
			}

			res, err := a.client.SendWebhook(cmd.Context(), body)
			if err != nil {
				return err
			}
			if res.UID != "" {
				a.printer.Success("%s: %s %s via %s", res.Message, res.Action, res.UID, res.Shape)
			} else {
				a.printer.Success("%s: %s", res.Message, res.Event)
			}
			a.printer.Info("Index now holds %d entries", res.Stats.TotalEntries)
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "-", "payload file, - for stdin")
	cmd.Flags().StringVar(&event, "event", "", "override the payload's event name")
	return cmd
}

func readBody(cmd *cobra.Command, file string) ([]byte, error) {
	var (
		body []byte
		err  error
	)
	if file == "" || file == "-" {
		body, err = io.ReadAll(cmd.InOrStdin())
	} else {
		body, err = os.ReadFile(file)
	}
	if err != nil {
		return nil, fmt.Errorf("reading payload: %w", err)
	}
	if len(body) == 0 {
		return nil, errors.New("payload is empty")
	}
	return body, nil
}

// overrideEvent replaces the event name of an object payload. Flat event
// payloads carry it as event_type, the others as event.
func overrideEvent(body []byte, event string) ([]byte, error) {
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(body, &envelope); err != nil || envelope == nil {
		return nil, errors.New("--event needs a JSON object payload")
	}
	name, err := json.Marshal(event)
	if err != nil {
		return nil, err
	}
	key := "event"
	if _, ok := envelope["event_type"]; ok {
		key = "event_type"
	}
	envelope[key] = name
	return json.Marshal(envelope)
}
