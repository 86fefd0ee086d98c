package datasets

type DataSource struct {
	Identifier string    `yaml:"identifier" json:"identifier"`
	Region     string    `yaml:"region" json:"region"`
	Provider   Provider  `yaml:"provider" json:"provider"`
	Datasets   []DataSet `yaml:"datasets" json:"datasets"`
}

// DatasetsWithFormat keeps declaration order.
func (d *DataSource) DatasetsWithFormat(format DataSetFormat) []DataSet {
	var matching []DataSet

	for _, dataset := range d.Datasets {
		if dataset.Format == format {
			matching = append(matching, dataset)
		}
	}

	return matching
}
