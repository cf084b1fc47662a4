package refdata

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Manifest is the catalogue of known federal states, used to warn about
// reference layers whose codes drift from the canonical sixteen.
type Manifest struct {
	States []ManifestState `yaml:"states"`
}

type ManifestState struct {
	Code string `yaml:"code"`
	Name string `yaml:"name"`
}

// Built-in catalogue; FS_MANIFEST may point at a YAML file overriding it.
const defaultManifest = `states:
  - {code: BB, name: Brandenburg}
  - {code: BE, name: Berlin}
  - {code: BW, name: Baden-Württemberg}
  - {code: BY, name: Bayern}
  - {code: HB, name: Bremen}
  - {code: HE, name: Hessen}
  - {code: HH, name: Hamburg}
  - {code: MV, name: Mecklenburg-Vorpommern}
  - {code: NI, name: Niedersachsen}
  - {code: NW, name: Nordrhein-Westfalen}
  - {code: RP, name: Rheinland-Pfalz}
  - {code: SH, name: Schleswig-Holstein}
  - {code: SL, name: Saarland}
  - {code: SN, name: Sachsen}
  - {code: ST, name: Sachsen-Anhalt}
  - {code: TH, name: Thüringen}
`

// LoadManifest reads the catalogue from FS_MANIFEST or falls back to the
// built-in list.
func LoadManifest() (*Manifest, error) {
	doc := []byte(defaultManifest)
	if path := os.Getenv("FS_MANIFEST"); path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("refdata: manifest %s: %w", path, err)
		}
		doc = b
	}
	var m Manifest
	if err := yaml.Unmarshal(doc, &m); err != nil {
		return nil, fmt.Errorf("refdata: manifest parse: %w", err)
	}
	if len(m.States) == 0 {
		return nil, fmt.Errorf("refdata: manifest has no states")
	}
	return &m, nil
}

// KnownCodes returns the catalogue as a lookup set.
func (m *Manifest) KnownCodes() map[string]string {
	out := make(map[string]string, len(m.States))
	for _, s := range m.States {
		out[s.Code] = s.Name
	}
	return out
}

// UnknownCodes lists reference-layer codes absent from the catalogue.
func (m *Manifest) UnknownCodes(ref *RefLayer) []string {
	known := m.KnownCodes()
	var unknown []string
	for _, s := range ref.States {
		if _, ok := known[s.Code]; !ok {
			unknown = append(unknown, s.Code)
		}
	}
	return unknown
}
