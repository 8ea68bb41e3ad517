package subst

import (
	"io"

	"github.com/magiconair/properties"
)

// pomLoader reads pom.properties the way java.util.Properties does: Latin-1
// with \uXXXX escapes and no ${} expansion.
var pomLoader = properties.Loader{
	Encoding:         properties.ISO_8859_1,
	DisableExpansion: true,
}

func parseProperties(r io.Reader) (map[string]string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	props, err := pomLoader.LoadBytes(data)
	if err != nil {
		return nil, err
	}
	return props.Map(), nil
}
