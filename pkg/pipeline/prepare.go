package pipeline

import (
	"github.com/matzehuels/masterymap/pkg/knowledge"
	"github.com/matzehuels/masterymap/pkg/profile"
)

// Prepare builds the validated registry for p. When mappingPath is set, the
// topic table is read from that CSV instead of the profile.
func Prepare(p *profile.Profile, mappingPath string) (*knowledge.Registry, error) {
	var rows []knowledge.Row
	if mappingPath != "" {
		var err error
		if rows, err = knowledge.ReadMappingFile(mappingPath); err != nil {
			return nil, err
		}
	}
	return p.Registry(rows)
}
