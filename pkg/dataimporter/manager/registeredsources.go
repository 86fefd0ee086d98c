package manager

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/travigo/bikeflow/pkg/dataimporter/datasets"
	"github.com/travigo/bikeflow/pkg/util"
	"gopkg.in/yaml.v3"
)

const defaultDataSourcesDirectory = "data/datasources/"

var ErrDataSourceNotFound = errors.New("data source could not be found")
var ErrDatasetNotFound = errors.New("dataset could not be found")

func DataSourcesDirectory() string {
	env := util.GetEnvironmentVariables()

	if env["BIKEFLOW_DATASOURCES_DIR"] != "" {
		return env["BIKEFLOW_DATASOURCES_DIR"]
	}

	return defaultDataSourcesDirectory
}

// GetRegisteredDataSources reads every YAML document in every .yaml file in
// the directory.
func GetRegisteredDataSources(directory string) ([]datasets.DataSource, error) {
	var registered []datasets.DataSource

	err := filepath.Walk(directory,
		func(path string, fileInfo os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if fileInfo.IsDir() {
				return nil
			}

			extension := filepath.Ext(path)
			if extension != ".yaml" && extension != ".yml" {
				return nil
			}

			log.Debug().Str("path", path).Msg("Loading datasources file")

			datasourceYaml, err := os.ReadFile(path)
			if err != nil {
				return err
			}

			decoder := yaml.NewDecoder(bytes.NewReader(datasourceYaml))

			for {
				var datasource datasets.DataSource
				err := decoder.Decode(&datasource)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return fmt.Errorf("decode %s: %w", path, err)
				}

				for i := range datasource.Datasets {
					dataset := &datasource.Datasets[i]
					dataset.Identifier = fmt.Sprintf("%s-%s", datasource.Identifier, dataset.Identifier)
					dataset.DataSourceRef = datasource.Identifier
					dataset.Provider = datasource.Provider
				}

				registered = append(registered, datasource)
			}

			return nil
		})
	if err != nil {
		return nil, err
	}

	return registered, nil
}

func GetDataSource(directory string, identifier string) (datasets.DataSource, error) {
	registered, err := GetRegisteredDataSources(directory)
	if err != nil {
		return datasets.DataSource{}, err
	}

	for _, datasource := range registered {
		if datasource.Identifier == identifier {
			return datasource, nil
		}
	}

	return datasets.DataSource{}, fmt.Errorf("%w: %s", ErrDataSourceNotFound, identifier)
}

// GetDataset looks a dataset up by its prefixed identifier, eg. bluebikes-stations.
func GetDataset(directory string, identifier string) (datasets.DataSet, error) {
	registered, err := GetRegisteredDataSources(directory)
	if err != nil {
		return datasets.DataSet{}, err
	}

	for _, datasource := range registered {
		for _, dataset := range datasource.Datasets {
			if dataset.Identifier == identifier {
				return dataset, nil
			}
		}
	}

	return datasets.DataSet{}, fmt.Errorf("%w: %s", ErrDatasetNotFound, identifier)
}
