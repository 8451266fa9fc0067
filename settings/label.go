package settings

import (
	"strings"

	"github.com/Ghostkeeper/R2D2/model"
)

/*
Label identifies a trained variable: a setting, or one option of a text setting
*/
type Label struct {
	Setting string
	Option  string
}

func (l Label) String() string {
	if l.Option == "" {
		return l.Setting
	}
	return l.Setting + "=" + l.Option
}

/*
ParseLabel is the reverse of Label.String
*/
func ParseLabel(s string) Label {
	if i := strings.IndexByte(s, '='); i >= 0 {
		return Label{s[:i], s[i+1:]}
	}
	return Label{Setting: s}
}

/*
Less orders labels by setting and then by option
*/
func (l Label) Less(o Label) bool {
	if l.Setting != o.Setting {
		return l.Setting < o.Setting
	}
	return l.Option < o.Option
}

/*
Labeled is a dataset built for a label
*/
type Labeled struct {
	Label   Label
	Dataset model.Dataset
}
