package cmd

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/yageo/config"
	"github.com/s0up4200/yageo/yandex"
)

const testPayload = `{"response":{"GeoObjectCollection":{
  "metaDataProperty":{"GeocoderResponseMetaData":{"request":"Moscow","found":"2","results":"10","skip":"0"}},
  "featureMember":[
    {"GeoObject":{"metaDataProperty":{"GeocoderMetaData":{"kind":"locality","precision":"other","text":"Russia, Moscow"}},"name":"Moscow","Point":{"pos":"37.617698 55.755864"}}},
    {"GeoObject":{"metaDataProperty":{"GeocoderMetaData":{"kind":"street","precision":"street","text":"Russia, Tver, Moscow Street"}},"name":"Moscow Street","Point":{"pos":"35.9 56.85"}}}
  ]}}}`

func changedSet(names ...string) func(string) bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(name string) bool { return set[name] }
}

func TestApplyRequest(t *testing.T) {
	tests := []struct {
		name     string
		defaults config.DefaultsConfig
		flags    requestFlags
		changed  []string
		want     yandex.Filters
		wantErr  string
	}{
		{
			name:     "config defaults",
			defaults: config.DefaultsConfig{Lang: "en-US", Limit: 3, Kind: "house"},
			want: yandex.Filters{
				"apikey": "key", "lang": "en-US", "format": "json", "skip": 0, "results": 3, "kind": "house",
			},
		},
		{
			name:     "flags override defaults",
			defaults: config.DefaultsConfig{Lang: "en-US", Limit: 3},
			flags:    requestFlags{lang: "uk-UA", limit: 1, offset: 2, xml: true, restrict: true},
			changed:  []string{"lang", "limit", "offset", "xml", "restrict"},
			want: yandex.Filters{
				"apikey": "key", "lang": "uk-UA", "format": "xml", "skip": 2, "results": 1, "rspn": 1,
			},
		},
		{
			name:  "span and center",
			flags: requestFlags{span: "0.5,0.25", center: "37.6,55.7"},
			want: yandex.Filters{
				"apikey": "key", "lang": "ru-RU", "format": "json", "skip": 0, "results": 10,
				"spn": "0.500000,0.250000", "ll": "37.600000,55.700000",
			},
		},
		{
			name:    "center without span",
			flags:   requestFlags{center: "37.6,55.7"},
			wantErr: "--center requires --span",
		},
		{
			name:    "bad span",
			flags:   requestFlags{span: "wide"},
			wantErr: "invalid --span",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := yandex.NewClient("key", zerolog.Nop())
			c.SetQuery("leftover")

			err := applyRequest(c, tt.defaults, &tt.flags, changedSet(tt.changed...))
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, c.Filters())
		})
	}
}

func TestParsePoint(t *testing.T) {
	p, err := parsePoint(" 37.6 , 55.7 ")
	require.NoError(t, err)
	assert.Equal(t, yandex.Point{Lon: 37.6, Lat: 55.7}, p)

	for _, bad := range []string{"", "1", "1,2,3", "x,1", "1,y"} {
		_, err := parsePoint(bad)
		assert.Error(t, err, bad)
	}
}

func TestReleaseVersion(t *testing.T) {
	v, err := releaseVersion("v1.2.3")
	require.NoError(t, err)
	assert.Equal(t, "1.2.3", v.String())

	_, err = releaseVersion("dev")
	assert.Error(t, err)
}

func TestSetupLogger_Level(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "log")
	require.NoError(t, err)
	defer f.Close()

	l := setupLogger(config.LoggingConfig{Level: "warn", Format: "json"}, f)
	assert.Equal(t, zerolog.WarnLevel, l.GetLevel())

	l = setupLogger(config.LoggingConfig{Level: "bogus", Format: "console"}, f)
	assert.Equal(t, zerolog.InfoLevel, l.GetLevel())
}

func TestGeocodeCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/1.x/", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("apikey"))
		assert.Equal(t, "Moscow", r.URL.Query().Get("geocode"))
		assert.Equal(t, "2", r.URL.Query().Get("results"))
		_, _ = w.Write([]byte(testPayload))
	}))
	defer server.Close()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
yandex:
  api_key: test-key
  base_url: `+server.URL+`/{version}/
logging:
  level: error
  color: false
`), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"geocode", "--config", path, "--limit", "2", "--where", `Kind == "locality" && icontains(Text, "MOSCOW")`, "Moscow"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Contains(t, out.String(), "Found 2 objects (showing 1)")
	assert.Contains(t, out.String(), "Russia, Moscow")
	assert.NotContains(t, out.String(), "Moscow Street")
}

func TestURLCommand(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
yandex:
  api_key: test-key
logging:
  level: error
`), 0o600))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"url", "--config", path, "--kind", "metro", "Moscow"})
	t.Cleanup(func() {
		rootCmd.SetOut(nil)
		rootCmd.SetArgs(nil)
	})

	require.NoError(t, rootCmd.Execute())
	assert.Equal(t,
		"https://geocode-maps.yandex.ru/1.x/?apikey=test-key&format=json&geocode=Moscow&kind=metro&lang=ru-RU&results=10&skip=0\n",
		out.String())
}

func TestDescribeError(t *testing.T) {
	client = yandex.NewClient("key", zerolog.Nop())

	err := describeError(&yandex.ServiceError{StatusCode: 403, Message: "Invalid key"})
	assert.Contains(t, err.Error(), "check yandex.api_key")
	assert.ErrorIs(t, err, yandex.ErrService)

	err = describeError(&yandex.ServiceError{StatusCode: 429, Message: "Limit"})
	assert.Contains(t, err.Error(), "request limit")

	client.SetFormat(true)
	err = describeError(&yandex.EmptyPayloadError{URI: "u"})
	assert.Contains(t, err.Error(), "drop --xml")
}
