package datasets

type DataSet struct {
	Identifier    string        `yaml:"identifier" json:"identifier"`
	DataSourceRef string        `yaml:"-" json:"-"`
	Format        DataSetFormat `yaml:"format" json:"format"`

	Provider Provider `yaml:"-" json:"provider"`

	Source               string               `yaml:"source" json:"source"`
	SourceAuthentication SourceAuthentication `yaml:"sourceauthentication" json:"-"`

	// TimeZone overrides the local time zone used for timestamps without an
	// offset. Only read by trip log formats.
	TimeZone string `yaml:"timezone" json:"timezone,omitempty"`
}

// SourceAuthentication values are expanded against the environment, so
// secrets can be written as ${BIKEFLOW_API_KEY}.
type SourceAuthentication struct {
	Query  map[string]string `yaml:"query"`
	Header map[string]string `yaml:"header"`
	Basic  struct {
		Username string `yaml:"username"`
		Password string `yaml:"password"`
	} `yaml:"basic"`
}

type DataSetFormat string

const (
	DataSetFormatStationCatalog DataSetFormat = "station-catalog-json"
	DataSetFormatTripLog        DataSetFormat = "trip-log-csv"
)

type Provider struct {
	Name    string `yaml:"name" json:"name"`
	Website string `yaml:"website" json:"website"`
}
