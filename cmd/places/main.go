package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/mobil-koeln/placepicker/internal/api"
	"github.com/mobil-koeln/placepicker/internal/config"
	"github.com/mobil-koeln/placepicker/internal/geo"
	"github.com/mobil-koeln/placepicker/internal/models"
	"github.com/mobil-koeln/placepicker/internal/output"
	"github.com/mobil-koeln/placepicker/internal/tui"
)

var version = "0.1.0"

func main() {
	if err := rootCmd.Execute(); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "places",
	Short: "Search places with the Google Places API",
	Long: `places is a terminal place picker backed by the Google Places API.

Features:
  - Interactive search-as-you-type with predefined shortcuts
  - Current location lookup (nearby search or reverse geocoding)
  - Place details for any place id
  - Legacy and new Places API
  - JSON output for scripting

Configuration is read from places.yaml, PLACES_* entries of a .env file,
PLACES_* environment variables and flags, in increasing order of precedence.

Quick Start:
  1. Launch TUI:               places (or places tui)
  2. Search for a place:       places search "Kölner Dom"
  3. Show place details:       places details <place_id>
  4. Find nearby places:       places nearby 50.9413,6.9583
  5. Reverse-geocode a point:  places geocode 50.9413,6.9583`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		// If no subcommand is provided, launch TUI
		if len(args) == 0 {
			return runTUI(cmd, args)
		}
		return cmd.Help()
	},
}

// Global flags
var (
	flagConfig  string
	flagJSON    bool
	flagRawJSON bool
)

// Per-command flags
var (
	flagPrint        bool
	flagQuitOnSelect bool
	flagShowIDs      bool
	flagShowTypes    bool
)

func init() {
	rootCmd.AddCommand(tuiCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(detailsCmd)
	rootCmd.AddCommand(nearbyCmd)
	rootCmd.AddCommand(geocodeCmd)
	rootCmd.AddCommand(configCmd)

	// Global flags. Everything but --config, --json and --raw-json is a
	// config key and overrides places.yaml, .env and PLACES_* when set.
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&flagConfig, "config", "", "Config file (default: ./places.yaml)")
	pf.BoolVar(&flagJSON, "json", false, "Output as JSON")
	pf.BoolVar(&flagRawJSON, "raw-json", false, "Output raw API response")
	pf.String("color", config.DefaultColor, "Color output: auto, always, never")
	pf.BoolP("verbose", "v", false, "Debug logging")
	pf.String("log-file", "", "Write logs to this file (the TUI logs nowhere else)")
	pf.String("key", "", "API key")
	pf.String("language", config.DefaultLanguage, "Result language")
	pf.Bool("new-api", false, "Use the new Places API")
	pf.String("request-url", "", "API root override, e.g. a proxy")
	pf.Duration("timeout", config.DefaultTimeout, "Request timeout")
	pf.String("fields", "", "Details field mask (new API)")

	// TUI flags
	tf := tuiCmd.Flags()
	tf.Duration("debounce", 0, "Wait this long after typing before searching")
	tf.Int("min-length", 0, "Minimum input length before searching")
	tf.String("placeholder", "", "Input placeholder")
	tf.Bool("fetch-details", true, "Resolve selections through the details endpoint")
	tf.Bool("current-location", false, "Offer the current location row")
	tf.String("at", "", "Fixed current position as lat,lng")
	tf.String("nearby-api", config.DefaultNearbyAPI, "Current location lookup: GooglePlacesSearch, GoogleReverseGeocoding, None")
	tf.String("list-view", config.DefaultListView, "Suggestion list: auto, always, never")
	tf.BoolVar(&flagPrint, "print", false, "Print the selection on exit")
	tf.BoolVar(&flagQuitOnSelect, "quit-on-select", false, "Exit after the first selection (implies --print)")

	searchCmd.Flags().BoolVar(&flagShowIDs, "ids", false, "Show place ids")
	searchCmd.Flags().BoolVar(&flagShowTypes, "types", false, "Show place types")
	nearbyCmd.Flags().BoolVar(&flagShowIDs, "ids", false, "Show place ids")
	nearbyCmd.Flags().BoolVar(&flagShowTypes, "types", false, "Show place types")
	geocodeCmd.Flags().BoolVar(&flagShowTypes, "types", false, "Show result types")
	geocodeCmd.Flags().StringSlice("filter-reverse-geocoding-by-types", nil, "Keep only results with one of these types")
}

// loadConfig merges defaults, places.yaml, .env, PLACES_* and the flags of cmd
func loadConfig(cmd *cobra.Command) (*config.Loaded, error) {
	cfg, err := config.Load(flagConfig, cmd.Flags())
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// setupLogger builds the slog logger. The TUI owns the terminal, so it only
// logs when a log file is configured.
func setupLogger(cfg *config.Config, tuiMode bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if cfg.Verbose {
		level = slog.LevelDebug
	}

	var w io.Writer = os.Stderr
	closeFn := func() {}
	switch {
	case cfg.LogFile != "":
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to open log file: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	case tuiMode:
		w = io.Discard
	}

	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger, closeFn, nil
}

// createClient creates an API client from the merged configuration
func createClient(cfg *config.Config) (*api.Client, error) {
	if err := cfg.RequireKey(); err != nil {
		return nil, err
	}
	client, err := api.NewClient(cfg.ClientOptions()...)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	return client, nil
}

// getColors returns the colors for the configured mode
func getColors(cfg *config.Config) *output.Colors {
	return output.NewColors(output.ParseColorMode(cfg.Color))
}

// setup loads config, logger and client for a one-shot command
func setup(cmd *cobra.Command) (*config.Loaded, *api.Client, func(), error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	logger, closeLog, err := setupLogger(cfg.Config, false)
	if err != nil {
		return nil, nil, nil, err
	}
	client, err := createClient(cfg.Config)
	if err != nil {
		closeLog()
		return nil, nil, nil, err
	}
	logger.Debug("config loaded", "file", cfg.File, "dotenv", cfg.DotEnv, "new_api", cfg.NewAPI, "base_url", client.BaseURL())
	return cfg, client, closeLog, nil
}

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch interactive place picker",
	Long: `Launch the interactive place picker.

Type to search, use the arrow keys to move through suggestions and press
Enter to resolve a place. Predefined places from places.yaml are listed
while the input is empty.`,
	Args: cobra.NoArgs,
	RunE: runTUI,
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := setupLogger(cfg.Config, true)
	if err != nil {
		return err
	}
	defer closeLog()

	client, err := createClient(cfg.Config)
	if err != nil {
		return err
	}

	acfg, err := cfg.Autocomplete(logger)
	if err != nil {
		return err
	}

	subtitle := "Places API (legacy)"
	if cfg.NewAPI {
		subtitle = "Places API (new)"
	}

	model := tui.New(acfg, client, tui.Options{
		QuitOnSelect: flagQuitOnSelect,
		Subtitle:     subtitle,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}

	m, ok := final.(tui.Model)
	if !ok {
		return nil
	}
	m.Close()

	if !flagPrint && !flagQuitOnSelect {
		return nil
	}
	data, detail, ok := m.Selection()
	if !ok {
		return nil
	}
	return printSelection(cmd.OutOrStdout(), getColors(cfg.Config), data, detail)
}

// printSelection prints the picked place after the TUI exits
func printSelection(w io.Writer, colors *output.Colors, data models.PlaceData, detail *models.PlaceDetail) error {
	if flagJSON {
		return encodeJSON(w, struct {
			Data   models.PlaceData    `json:"data"`
			Detail *models.PlaceDetail `json:"detail"`
		}{data, detail})
	}
	if detail == nil {
		_, _ = fmt.Fprintln(w, data.Description)
		return nil
	}
	output.RenderDetail(w, detail, output.TableOptions{Colors: colors})
	return nil
}

var searchCmd = &cobra.Command{
	Use:   "search <text>",
	Short: "Search places by text",
	Long: `Search places by text and print the predictions.

Examples:
  places search "Kölner Dom"
  places search Hauptbahnhof --ids
  places search pizza --json`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, client, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	req := api.AutocompleteRequest{
		Input:        strings.Join(args, " "),
		SessionToken: uuid.NewString(),
		Query:        cfg.Query,
	}

	if flagRawJSON {
		raw, err := client.AutocompleteRaw(ctx, req)
		if err != nil {
			return err
		}
		return printPrettyJSON(cmd.OutOrStdout(), raw)
	}

	entries, err := client.Autocomplete(ctx, req)
	if err != nil {
		return err
	}

	if flagJSON {
		return encodeJSON(cmd.OutOrStdout(), entries)
	}

	output.RenderEntries(cmd.OutOrStdout(), entries, output.TableOptions{
		Colors:    getColors(cfg.Config),
		ShowIDs:   flagShowIDs,
		ShowTypes: flagShowTypes,
	})
	return nil
}

var detailsCmd = &cobra.Command{
	Use:   "details <place_id>...",
	Short: "Show details for one or more place ids",
	Long: `Resolve place ids to their detail records.

Several ids are fetched concurrently and printed in the order given.
With --json a single id prints an object, several ids print an array.

Examples:
  places details ChIJ-dom
  places details ChIJ-dom ChIJ-hbf --json
  places details ChIJ-dom --new-api --fields id,displayName,location`,
	Args: cobra.MinimumNArgs(1),
	RunE: runDetails,
}

// maxConcurrentDetails bounds parallel detail requests
const maxConcurrentDetails = 4

func runDetails(cmd *cobra.Command, args []string) error {
	cfg, client, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	// one autocomplete session covers the whole batch
	token := uuid.NewString()
	request := func(id string) api.DetailsRequest {
		return api.DetailsRequest{
			PlaceID:      id,
			SessionToken: token,
			Fields:       cfg.Fields,
			Query:        cfg.DetailsQuery,
		}
	}

	w := cmd.OutOrStdout()

	if flagRawJSON {
		raws := make([]json.RawMessage, len(args))
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(maxConcurrentDetails)
		for i, id := range args {
			g.Go(func() error {
				raw, err := client.DetailsRaw(gctx, request(id))
				if err != nil {
					return err
				}
				raws[i] = raw
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
		for _, raw := range raws {
			if err := printPrettyJSON(w, raw); err != nil {
				return err
			}
		}
		return nil
	}

	details := make([]*models.PlaceDetail, len(args))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxConcurrentDetails)
	for i, id := range args {
		g.Go(func() error {
			detail, err := client.Details(gctx, request(id))
			if err != nil {
				return err
			}
			details[i] = detail
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	if flagJSON {
		if len(details) == 1 {
			return encodeJSON(w, details[0])
		}
		return encodeJSON(w, details)
	}

	opts := output.TableOptions{Colors: getColors(cfg.Config)}
	for i, detail := range details {
		if i > 0 {
			_, _ = fmt.Fprintln(w)
		}
		output.RenderDetail(w, detail, opts)
	}
	return nil
}

var nearbyCmd = &cobra.Command{
	Use:   "nearby [lat,lng]",
	Short: "List places around a coordinate",
	Long: `List places around a coordinate using the nearby search endpoint.

Without an argument the configured position is used.

Examples:
  places nearby 50.9413,6.9583
  places nearby 50.9413:6.9583 --json`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNearby(cmd, args, api.NearbyPlacesSearch)
	},
}

var geocodeCmd = &cobra.Command{
	Use:   "geocode [lat,lng]",
	Short: "Reverse-geocode a coordinate",
	Long: `Reverse-geocode a coordinate into addresses.

Without an argument the configured position is used.

Examples:
  places geocode 50.9413,6.9583
  places geocode 50.9413,6.9583 --filter-reverse-geocoding-by-types locality`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runNearby(cmd, args, api.NearbyReverseGeocoding)
	},
}

func runNearby(cmd *cobra.Command, args []string, nearby api.NearbyAPI) error {
	cfg, client, closeLog, err := setup(cmd)
	if err != nil {
		return err
	}
	defer closeLog()

	pos, err := resolvePosition(cmd.Context(), cfg.Config, args)
	if err != nil {
		return err
	}

	ctx, stop := output.SignalContext(cmd.Context())
	defer stop()

	req := api.NearbyRequest{
		Latitude:  pos.Lat,
		Longitude: pos.Lng,
		API:       nearby,
		Query:     cfg.PlacesSearchQuery,
	}
	if nearby == api.NearbyReverseGeocoding {
		req.Query = cfg.ReverseGeocodingQuery
		req.FilterTypes = cfg.FilterReverseGeocodingByTypes
	}

	if flagRawJSON {
		raw, err := client.NearbyRaw(ctx, req)
		if err != nil {
			return err
		}
		return printPrettyJSON(cmd.OutOrStdout(), raw)
	}

	entries, err := client.Nearby(ctx, req)
	if err != nil {
		return err
	}

	if flagJSON {
		return encodeJSON(cmd.OutOrStdout(), entries)
	}

	output.RenderEntries(cmd.OutOrStdout(), entries, output.TableOptions{
		Colors:    getColors(cfg.Config),
		ShowIDs:   flagShowIDs,
		ShowTypes: flagShowTypes,
	})
	return nil
}

// resolvePosition takes the coordinate argument, or asks the configured locator
func resolvePosition(ctx context.Context, cfg *config.Config, args []string) (models.Point, error) {
	if len(args) == 1 {
		p, err := geo.ParsePoint(args[0])
		if err != nil {
			return models.Point{}, api.ErrInvalidFormat("coordinates", "LAT,LNG")
		}
		return p, nil
	}

	locator, err := cfg.Locator()
	if err != nil {
		return models.Point{}, err
	}
	if !geo.Available(locator) {
		return models.Point{}, api.NewValidationError("coordinates", "no argument and no position configured")
	}
	opts := geo.DefaultOptions()
	opts.HighAccuracy = cfg.HighAccuracy
	return geo.Locate(ctx, locator, opts)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the merged configuration",
	Long: `Show the configuration after merging defaults, places.yaml, the
PLACES_* entries of .env, PLACES_* environment variables and flags.
The API key is masked.`,
	Args: cobra.NoArgs,
	RunE: runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	all := cfg.All()
	for k := range all {
		if (k == "api_key" || strings.HasSuffix(k, ".key")) && all[k] != "" {
			all[k] = "***"
		}
	}

	w := cmd.OutOrStdout()
	if flagJSON {
		return encodeJSON(w, all)
	}

	colors := getColors(cfg.Config)
	file := cfg.File
	if file == "" {
		file = "(none)"
	}
	_, _ = fmt.Fprintf(w, "%s %s\n\n", colors.Header("Config file:"), file)

	keys := make([]string, 0, len(all))
	for k := range all {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		_, _ = fmt.Fprintf(w, "  %s %v\n", colors.Muted("%-34s", k), all[k])
	}
	return nil
}

func encodeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printPrettyJSON(w io.Writer, data []byte) error {
	var prettyJSON interface{}
	if err := json.Unmarshal(data, &prettyJSON); err != nil {
		// If we can't parse it, just print raw
		_, _ = fmt.Fprintln(w, string(data))
		return err
	}
	return encodeJSON(w, prettyJSON)
}
