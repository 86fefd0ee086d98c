package bikeshare

type DataSource struct {
	OriginalFormat string `json:"originalFormat" groups:"internal"`
	Provider       string `json:"provider" groups:"internal"`
	DatasetID      string `json:"datasetId" groups:"internal"`
	Timestamp      string `json:"timestamp" groups:"internal"`
}
