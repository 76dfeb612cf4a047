package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"sundial"
	"sundial/internal/config"
	"sundial/internal/repository"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const clientTimeout = 5 * time.Second

var (
	nowCmd = &cobra.Command{
		Use:   "now",
		Short: "Print the current color temperature in Kelvin.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runNow()
		},
	}

	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "Print the full daemon status.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runStatus()
		},
	}

	setCmd = &cobra.Command{
		Use:   "set <kelvin>",
		Short: "Override the temperature until the next resume.",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			kelvin, err := strconv.Atoi(args[0])
			if err != nil || kelvin <= 0 {
				return fmt.Errorf("temperature must be a positive integer, got %q", args[0])
			}
			return runSet(kelvin)
		},
	}

	pauseCmd = &cobra.Command{
		Use:   "pause",
		Short: "Pause automatic transitions.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSimplePost("/api/v1/display/pause", "paused")
		},
	}

	resumeCmd = &cobra.Command{
		Use:   "resume",
		Short: "Resume automatic transitions, clearing any override.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runSimplePost("/api/v1/display/resume", "resumed")
		},
	}

	configCmd = &cobra.Command{
		Use:   "config",
		Short: "Print the resolved configuration as YAML.",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runConfig()
		},
	}
)

//nolint:gochecknoinits // Required by Cobra CLI framework architecture.
func init() {
	rootCmd.AddCommand(nowCmd, statusCmd, setCmd, pauseCmd, resumeCmd, configCmd)
}

// ---- HTTP helpers ----

func apiURL(cfg *config.Config, path string) string {
	return "http://" + cfg.ListenAddr() + path
}

func getJSON(cfg *config.Config, path string, out interface{}) error {
	client := &http.Client{Timeout: clientTimeout}
	resp, err := client.Get(apiURL(cfg, path))
	if err != nil {
		return err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func postJSON(cfg *config.Config, path string, body interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	client := &http.Client{Timeout: clientTimeout}
	resp, err := client.Post(apiURL(cfg, path), "application/json", &buf)
	if err != nil {
		return fmt.Errorf("daemon not reachable at %s (is \"sundial daemon\" running?): %w", cfg.ListenAddr(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return apiError(resp)
	}
	return nil
}

// apiError extracts the {"error": "..."} message from a failed response.
func apiError(resp *http.Response) error {
	var payload struct {
		Error string `json:"error"`
	}
	raw, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<16))
	if err := json.Unmarshal(raw, &payload); err == nil && payload.Error != "" {
		return fmt.Errorf("daemon returned %s: %s", resp.Status, payload.Error)
	}
	return fmt.Errorf("daemon returned %s", resp.Status)
}

// readStatus queries the running daemon, falling back to the status file when
// the daemon is not reachable.
func readStatus(cfg *config.Config) (repository.Status, error) {
	var state sundial.RuntimeState
	if err := getJSON(cfg, "/api/v1/display/status", &state); err == nil {
		return repository.Status{
			Temp:     state.CurrentTemp,
			Phase:    string(state.Phase),
			Target:   state.TargetTemp,
			Progress: state.Progress,
		}, nil
	}

	st, err := repository.NewStatusFile(cfg.Daemon.StatusFile).Read()
	if err != nil {
		return repository.Status{}, fmt.Errorf("daemon not reachable and status file unavailable: %w", err)
	}
	return st, nil
}

// ---- Command bodies ----

func runNow() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, err := readStatus(cfg)
	if err != nil {
		return err
	}
	fmt.Println(st.Temp)
	return nil
}

func runStatus() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	st, err := readStatus(cfg)
	if err != nil {
		return err
	}
	fmt.Printf("temp=%d\nphase=%s\ntarget=%d\nprogress=%.2f\n", st.Temp, st.Phase, st.Target, st.Progress)
	return nil
}

func runSet(kelvin int) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	body := map[string]int{"temperature": kelvin}
	if err := postJSON(cfg, "/api/v1/display/override", body); err != nil {
		return err
	}
	fmt.Printf("temperature overridden to %dK\n", kelvin)
	return nil
}

func runSimplePost(path, verb string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := postJSON(cfg, path, nil); err != nil {
		return err
	}
	fmt.Printf("transitions %s\n", verb)
	return nil
}

func runConfig() error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	out, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	fmt.Print(string(out))
	return nil
}
