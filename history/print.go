/*
Package history keeps the record of evaluated prints and serves them as
training observations.
*/
package history

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/Ghostkeeper/R2D2/settings"
	"go-ml.dev/pkg/zorros"
)

// TimeDateLayout is the layout of Print.TimeDate
const TimeDateLayout = "2006-01-02_15-04-05"

/*
Hash is a scene hash, recorded either as a string or as a number
*/
type Hash string

func (h *Hash) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*h = Hash(s)
		return nil
	}
	if string(b) == "null" {
		*h = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*h = Hash(n.String())
	return nil
}

/*
Print is a previously made print with the settings of every extruder and the
evaluation given to the result
*/
type Print struct {
	Name              string                   `json:"name"`
	TimeDate          string                   `json:"time_date"`
	PrinterType       string                   `json:"printer_type"`
	EvaluatedExtruder int                      `json:"evaluated_extruder"`
	ModelHash         Hash                     `json:"model_hash"`
	Extruders         []map[string]interface{} `json:"extruders"`
	Evaluation        map[string]interface{}   `json:"evaluation"`
}

/*
NewPrint returns an unnamed print made now
*/
func NewPrint() *Print {
	return &Print{
		Name:        "unknown",
		TimeDate:    time.Now().Format(TimeDateLayout),
		PrinterType: "unknown",
		Evaluation:  map[string]interface{}{},
	}
}

/*
SetExtruder records settings of the extruder at position nr, including its
"nozzle" and "material"
*/
func (p *Print) SetExtruder(nr int, extruder map[string]interface{}) {
	for len(p.Extruders) <= nr {
		p.Extruders = append(p.Extruders, map[string]interface{}{})
	}
	p.Extruders[nr] = extruder
}

/*
Extruder returns settings of the extruder at position nr or nil
*/
func (p *Print) Extruder(nr int) map[string]interface{} {
	if nr < 0 || nr >= len(p.Extruders) {
		return nil
	}
	return p.Extruders[nr]
}

/*
EvaluatedExtruderSettings returns settings of the extruder the evaluation is about
*/
func (p *Print) EvaluatedExtruderSettings() map[string]interface{} {
	return p.Extruder(p.EvaluatedExtruder)
}

func (p *Print) text(nr int, key string) string {
	s, _ := p.Extruder(nr)[key].(string)
	return s
}

/*
Nozzle returns the nozzle of the evaluated extruder
*/
func (p *Print) Nozzle() string {
	return p.text(p.EvaluatedExtruder, "nozzle")
}

/*
Material returns the material of the evaluated extruder
*/
func (p *Print) Material() string {
	return p.text(p.EvaluatedExtruder, "material")
}

/*
Observation converts the print to a training observation. Only numeric and
boolean evaluation entries are ratings, settings recorded as null are left out
*/
func (p *Print) Observation() (settings.Observation, error) {
	o := settings.Observation{
		Evaluation: make(map[string]float64, len(p.Evaluation)),
		Settings:   make(map[string]settings.Value),
	}
	for k, v := range p.Evaluation {
		switch q := v.(type) {
		case float64:
			o.Evaluation[k] = q
		case bool:
			if q {
				o.Evaluation[k] = 1
			} else {
				o.Evaluation[k] = 0
			}
		case string:
			if f, err := strconv.ParseFloat(q, 64); err == nil {
				o.Evaluation[k] = f
			}
		}
	}
	for k, v := range p.EvaluatedExtruderSettings() {
		sv, err := settings.Of(v)
		if err != nil {
			return o, zorros.Wrapf(err, "print %v setting %v: %v", p.Name, k, err.Error())
		}
		if sv.Valid() {
			o.Settings[k] = sv
		}
	}
	return o, nil
}

/*
FileName is the name of the file the print is saved to
*/
func (p *Print) FileName() string {
	return p.TimeDate + "_" + p.Name + ".json"
}

/*
Save writes the print to its own file in dir
*/
func (p *Print) Save(dir string) error {
	b, err := json.MarshalIndent(p, "", "\t")
	if err != nil {
		return zorros.Trace(err)
	}
	if err = os.WriteFile(filepath.Join(dir, p.FileName()), b, 0644); err != nil {
		return zorros.Wrapf(err, "failed to save print %v: %v", p.Name, err.Error())
	}
	return nil
}
