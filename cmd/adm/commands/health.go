package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	contextutils "ecoatlas/internal/utils"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const defaultProbeTimeout = 5 * time.Second

// HealthCommand returns the readiness probe against a running server.
func HealthCommand(env *Env) *cobra.Command {
	var (
		baseURL string
		timeout time.Duration
	)

	cmd := &cobra.Command{
		Use:   "health",
		Short: "Probe a running server's readiness endpoint",
		RunE: func(cmd *cobra.Command, _ []string) error {
			if baseURL == "" {
				baseURL = env.Config.Server.BaseURL
			}
			client := &http.Client{Transport: otelhttp.NewTransport(http.DefaultTransport), Timeout: timeout}

			status, err := probe(cmd.Context(), client, baseURL)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", strings.TrimRight(baseURL, "/"), status)
			return nil
		},
	}

	cmd.Flags().StringVar(&baseURL, "url", "", "Server base URL (defaults to server.base_url)")
	cmd.Flags().DurationVar(&timeout, "timeout", defaultProbeTimeout, "Probe timeout")
	return cmd
}

// probe calls GET /ready and returns the reported status.
func probe(ctx context.Context, client *http.Client, baseURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, strings.TrimRight(baseURL, "/")+"/ready", nil)
	if err != nil {
		return "", contextutils.WrapError(err, "failed to build probe request")
	}

	resp, err := client.Do(req)
	if err != nil {
		return "", contextutils.WrapErrorf(contextutils.ErrServiceUnavailable, "probe failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	var body struct {
		Data struct {
			Status string `json:"status"`
		} `json:"data"`
		Error string `json:"error"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&body)

	if resp.StatusCode != http.StatusOK {
		return "", contextutils.NewAppError(contextutils.ErrorCodeServiceUnavailable, contextutils.SeverityError,
			fmt.Sprintf("server not ready (HTTP %d)", resp.StatusCode), body.Error)
	}
	if body.Data.Status == "" {
		return "ok", nil
	}
	return body.Data.Status, nil
}
