package dns

import (
	"fmt"
	"os"
	"strings"
)

const templateRow = "prod,example.com,CNAME,www,target.example.com,300"

// WriteTemplate writes a starter CSV with the required header and a single
// example row. It never touches the network.
func WriteTemplate(path string) error {
	content := strings.Join(Header, ",") + "\n" + templateRow + "\n"
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("writing template %s: %w", path, err)
	}
	return nil
}
