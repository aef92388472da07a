package integration

import (
	"log"
	"os"

	"gopkg.in/yaml.v2"
)

type testConfig struct {
	Endpoint   string
	Collection string
}

var cfg = loadConfig()

func loadConfig() testConfig {

	data, err := os.ReadFile("service_test.yml")
	if err != nil {
		log.Fatal(err)
	}

	var c testConfig
	if err := yaml.Unmarshal(data, &c); err != nil {
		log.Fatal(err)
	}

	// allow environment variables to override the configuration file
	if len(os.Getenv("TC_ENDPOINT")) != 0 {
		c.Endpoint = os.Getenv("TC_ENDPOINT")
	}
	if len(os.Getenv("TC_COLLECTION")) != 0 {
		c.Collection = os.Getenv("TC_COLLECTION")
	}

	log.Printf("endpoint [%s] collection [%s]\n", c.Endpoint, c.Collection)

	return c
}

//
// end of file
//
