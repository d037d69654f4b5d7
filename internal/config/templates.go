package config

import (
	"fmt"
	"os"
	"strings"
)

func Template(kind string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(kind)) {
	case "gate":
		return gateTemplate, nil
	case "declarations":
		return declarationsTemplate, nil
	case "content":
		return contentTemplate, nil
	default:
		return "", fmt.Errorf("unknown config kind: %s", kind)
	}
}

func WriteTemplate(path, kind string, overwrite bool) error {
	template, err := Template(kind)
	if err != nil {
		return err
	}
	if !overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("config already exists: %s", path)
		}
	}
	return os.WriteFile(path, []byte(template), 0o600)
}

const gateTemplate = `name = "mediagate"
addr = ":9200"
cors_origins = ["http://localhost:3000"]
declarations = "declarations.toml"
content = "content.toml"
workers = 4
`

const declarationsTemplate = `# metadata: fields joined with "&&"; protocols: protocols joined with "||".
# Omit a key to inherit from the class; set it to "" to declare it empty.

[[classes]]
name = "PlaybackTest"
protocols = "Local||Http"

  [[classes.methods]]
  name = "testSeek"
  metadata = "Duration&&Width"

  [[classes.methods]]
  name = "testAnyProtocol"
  protocols = ""
`

const contentTemplate = `[[content]]
id = "sample-http"
protocol = "Http"
fields = "Duration&&Width&&Height"

[[content]]
id = "sample-local"
protocol = "Local"
fields = "Duration"
`
