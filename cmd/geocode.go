package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/s0up4200/yageo/config"
	"github.com/s0up4200/yageo/filter"
	"github.com/s0up4200/yageo/yandex"
)

// requestFlags holds the filter flags shared by geocode, reverse and url
type requestFlags struct {
	lang     string
	limit    int
	offset   int
	kind     string
	xml      bool
	span     string
	center   string
	restrict bool
	where    string
	output   string
	raw      bool
}

var reqFlags requestFlags

// geocodeCmd represents the geocode command
var geocodeCmd = &cobra.Command{
	Use:   "geocode <address>",
	Short: "Resolve an address to coordinates",
	Long: `Send a free-text address (or a "lon,lat" string) to the geocoder and
print the matching objects.`,
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runGeocode,
}

// reverseCmd represents the reverse command
var reverseCmd = &cobra.Command{
	Use:   "reverse <lon> <lat>",
	Short: "Resolve coordinates to addresses",
	Long: `Look up the toponyms at a point. Use --kind to pick the toponym type
(house, street, metro, district, locality).`,
	Args:    cobra.ExactArgs(2),
	PreRunE: initializeApp,
	RunE:    runReverse,
}

// urlCmd represents the url command
var urlCmd = &cobra.Command{
	Use:     "url <address>",
	Short:   "Print the request URL without sending it",
	Args:    cobra.MinimumNArgs(1),
	PreRunE: initializeApp,
	RunE:    runURL,
}

func init() {
	for _, c := range []*cobra.Command{geocodeCmd, reverseCmd, urlCmd} {
		addRequestFlags(c, &reqFlags)
		rootCmd.AddCommand(c)
	}
}

func addRequestFlags(c *cobra.Command, f *requestFlags) {
	c.Flags().StringVarP(&f.lang, "lang", "l", "", "response language (ru-RU, uk-UA, be-BY, en-US, en-BR, tr-TR)")
	c.Flags().IntVarP(&f.limit, "limit", "n", 0, "maximum number of results")
	c.Flags().IntVar(&f.offset, "offset", 0, "number of results to skip")
	c.Flags().StringVarP(&f.kind, "kind", "k", "", "toponym kind (house, street, metro, district, locality)")
	c.Flags().BoolVar(&f.xml, "xml", false, "request the XML format")
	c.Flags().StringVar(&f.span, "span", "", `search area size in degrees as "lng,lat"`)
	c.Flags().StringVar(&f.center, "center", "", `search area center as "lon,lat" (requires --span)`)
	c.Flags().BoolVar(&f.restrict, "restrict", false, "only return results inside the search area")
	c.Flags().StringVarP(&f.where, "where", "w", "", `filter expression over results, e.g. 'Kind == "house" && icontains(Text, "tver")'`)
	c.Flags().StringVarP(&f.output, "output", "o", "", "output format (table, json)")
	c.Flags().BoolVar(&f.raw, "raw", false, "print the geocoder payload as received")
}

func runGeocode(cmd *cobra.Command, args []string) error {
	if err := applyRequest(client, cfg.Defaults, &reqFlags, cmd.Flags().Changed); err != nil {
		return err
	}
	client.SetQuery(strings.Join(args, " "))

	return load(cmd.Context(), cmd.OutOrStdout())
}

func runReverse(cmd *cobra.Command, args []string) error {
	point, err := parsePoint(args[0] + "," + args[1])
	if err != nil {
		return err
	}
	if err := applyRequest(client, cfg.Defaults, &reqFlags, cmd.Flags().Changed); err != nil {
		return err
	}
	client.SetPoint(point.Lon, point.Lat)

	return load(cmd.Context(), cmd.OutOrStdout())
}

func runURL(cmd *cobra.Command, args []string) error {
	if err := applyRequest(client, cfg.Defaults, &reqFlags, cmd.Flags().Changed); err != nil {
		return err
	}
	client.SetQuery(strings.Join(args, " "))

	fmt.Fprintln(cmd.OutOrStdout(), client.Request().String())
	return nil
}

// applyRequest resets the client and applies config defaults, then any flag
// the user set explicitly.
func applyRequest(c *yandex.Client, defaults config.DefaultsConfig, f *requestFlags, changed func(string) bool) error {
	c.Clear()

	if defaults.Lang != "" {
		c.SetLang(defaults.Lang)
	}
	if defaults.Limit > 0 {
		c.SetLimit(defaults.Limit)
	}
	if defaults.Offset > 0 {
		c.SetOffset(defaults.Offset)
	}
	if defaults.Kind != "" {
		c.SetKind(defaults.Kind)
	}

	if changed("lang") {
		c.SetLang(f.lang)
	}
	if changed("limit") {
		c.SetLimit(f.limit)
	}
	if changed("offset") {
		c.SetOffset(f.offset)
	}
	if changed("kind") {
		c.SetKind(f.kind)
	}
	if changed("xml") {
		c.SetFormat(f.xml)
	}

	if f.center != "" && f.span == "" {
		return fmt.Errorf("--center requires --span")
	}
	if f.span != "" {
		span, err := parsePoint(f.span)
		if err != nil {
			return fmt.Errorf("invalid --span: %w", err)
		}
		var center *yandex.Point
		if f.center != "" {
			p, err := parsePoint(f.center)
			if err != nil {
				return fmt.Errorf("invalid --center: %w", err)
			}
			center = &p
		}
		c.SetArea(span.Lon, span.Lat, center)
	}
	if changed("restrict") {
		c.UseAreaLimit(f.restrict)
	}

	return nil
}

// parsePoint parses "a,b" into a Point
func parsePoint(s string) (yandex.Point, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 2 {
		return yandex.Point{}, fmt.Errorf("expected two comma separated numbers, got %q", s)
	}
	lon, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return yandex.Point{}, fmt.Errorf("invalid longitude %q: %w", parts[0], err)
	}
	lat, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return yandex.Point{}, fmt.Errorf("invalid latitude %q: %w", parts[1], err)
	}
	return yandex.Point{Lon: lon, Lat: lat}, nil
}

// load dispatches the request and prints the outcome
func load(ctx context.Context, out io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var where filter.CompiledFilter
	if reqFlags.where != "" {
		var err error
		where, err = filter.CompileFilter(reqFlags.where)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	logger.Info().Str("geocode", fmt.Sprint(client.Filters()[yandex.ParamGeocode])).Msg("Geocoding")

	if err := client.Load(ctx); err != nil {
		return describeError(err)
	}

	resp := client.Response()
	if reqFlags.raw {
		_, err := out.Write(append(resp.Body(), '\n'))
		return err
	}

	objects := resp.GeoObjects()
	if where != nil {
		objects = filter.Apply(where, objects)
		logger.Debug().
			Str("filter", where.Expression()).
			Int("matched", len(objects)).
			Msg("Applied result filter")
	}

	output := cfg.Defaults.Output
	if reqFlags.output != "" {
		output = reqFlags.output
	}

	switch output {
	case "json":
		return writeJSON(out, objects)
	case "table", "":
		return writeTable(out, resp, objects)
	default:
		return fmt.Errorf("unknown output format: %s (must be 'table' or 'json')", output)
	}
}

// describeError adds a hint to common geocoder failures
func describeError(err error) error {
	var serr *yandex.ServiceError
	if errors.As(err, &serr) {
		switch {
		case serr.IsUnauthorized():
			return fmt.Errorf("%w (check yandex.api_key)", err)
		case serr.IsRateLimited():
			return fmt.Errorf("%w (daily request limit reached)", err)
		}
	}
	if errors.Is(err, yandex.ErrEmptyPayload) && client.Filters()[yandex.ParamFormat] == "xml" {
		return fmt.Errorf("%w (xml payloads cannot be decoded, drop --xml)", err)
	}
	return err
}

func writeJSON(out io.Writer, objects []yandex.GeoObject) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(objects)
}

func writeTable(out io.Writer, resp *yandex.Response, objects []yandex.GeoObject) error {
	if len(objects) == 0 {
		fmt.Fprintln(out, "No objects found.")
		return nil
	}

	fmt.Fprintf(out, "Found %d objects (showing %d):\n", resp.Found(), len(objects))
	fmt.Fprintln(out, strings.Repeat("-", 80))

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KIND\tPRECISION\tLON\tLAT\tADDRESS")
	for _, obj := range objects {
		fmt.Fprintf(w, "%s\t%s\t%.6f\t%.6f\t%s\n",
			obj.Kind, obj.Precision, obj.Point.Lon, obj.Point.Lat, obj.Text)
	}
	return w.Flush()
}
