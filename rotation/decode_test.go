package rotation_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"gopkg.in/yaml.v3"

	"github.com/rotolog/rotolog/rotation"
)

// wrapper mirrors how a Trigger sits inside a configuration document.
type wrapper struct {
	Rotation rotation.Trigger `yaml:"rotation" json:"rotation"`
}

func decodeYAML(t *testing.T, doc string) (rotation.Trigger, error) {
	t.Helper()

	var w wrapper
	err := yaml.Unmarshal([]byte(doc), &w)

	return w.Rotation, err
}

func TestDecodeShorthand(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	trig, err := decodeYAML(t, `rotation: never`)
	assert.NoError(err)
	assert.Equal(rotation.Never(), trig)

	trig, err = decodeYAML(t, `rotation: size`)
	assert.NoError(err)
	assert.Equal(rotation.Size(rotation.DefaultMaxBytes, rotation.DefaultMaxFiles), trig)

	trig, err = decodeYAML(t, `rotation: time`)
	assert.NoError(err)
	assert.Equal(rotation.Time(rotation.Daily), trig)

	trig, err = decodeYAML(t, `rotation: both`)
	assert.NoError(err)
	assert.Equal(rotation.Both(rotation.Daily, rotation.DefaultMaxBytes, rotation.DefaultMaxFiles), trig)

	_, err = decodeYAML(t, `rotation: sometimes`)
	assert.ErrorIs(err, rotation.ErrInvalidTrigger)
}

func TestDecodeStructured(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	trig, err := decodeYAML(t, `
rotation:
  type: size
  max_size: 10
  max_files: 5
`)
	assert.NoError(err)
	assert.Equal(rotation.Size(10*1024, 5), trig, "bare max_size numbers are kilobytes")

	trig, err = decodeYAML(t, `
rotation:
  type: size
  max_size: "5K"
  max_files: 3
`)
	assert.NoError(err)
	assert.Equal(rotation.Size(5*1024, 3), trig)

	trig, err = decodeYAML(t, `
rotation:
  type: size
  max_size: "2m"
`)
	assert.NoError(err)
	assert.Equal(rotation.Size(2*1024*1024, rotation.DefaultMaxFiles), trig, "max_files defaults to 5")

	trig, err = decodeYAML(t, `
rotation:
  type: time
  period: weekly
`)
	assert.NoError(err)
	assert.Equal(rotation.Time(rotation.Weekly), trig)

	trig, err = decodeYAML(t, `
rotation:
  type: both
  period: hourly
  max_size: "512K"
  max_files: 10
`)
	assert.NoError(err)
	assert.Equal(rotation.Both(rotation.Hourly, 512*1024, 10), trig)
}

func TestDecodeStructuredErrors(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	_, err := decodeYAML(t, "rotation:\n  type: elliptical\n")
	assert.ErrorIs(err, rotation.ErrInvalidTrigger, "unknown type")

	_, err = decodeYAML(t, "rotation:\n  type: time\n")
	assert.ErrorIs(err, rotation.ErrInvalidTrigger, "time rotation requires a period")

	_, err = decodeYAML(t, "rotation:\n  type: size\n  max_files: 2\n")
	assert.ErrorIs(err, rotation.ErrInvalidTrigger, "size rotation requires max_size")

	_, err = decodeYAML(t, "rotation:\n  type: size\n  max_size: \"5X\"\n")
	assert.ErrorIs(err, rotation.ErrSizeParse)

	_, err = decodeYAML(t, "rotation:\n  type: size\n  max_size: 10\n  max_files: 0\n")
	assert.ErrorIs(err, rotation.ErrInvalidTrigger, "zero backups is rejected at decode time")
}

func TestDecodeJSON(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	var w wrapper

	err := json.Unmarshal([]byte(`{"rotation": {"type": "size", "max_size": "1M", "max_files": 2}}`), &w)
	assert.NoError(err)
	assert.Equal(rotation.Size(1024*1024, 2), w.Rotation)

	// JSON numbers arrive as float64 and still mean kilobytes.
	err = json.Unmarshal([]byte(`{"rotation": {"type": "size", "max_size": 10}}`), &w)
	assert.NoError(err)
	assert.Equal(rotation.Size(10*1024, rotation.DefaultMaxFiles), w.Rotation)

	err = json.Unmarshal([]byte(`{"rotation": "never"}`), &w)
	assert.NoError(err)
	assert.Equal(rotation.Never(), w.Rotation)
}

func TestDecodeValue(t *testing.T) {
	t.Parallel()
	assert := assert.New(t)

	trig, err := rotation.Decode(nil)
	assert.NoError(err)
	assert.Equal(rotation.Never(), trig)

	trig, err = rotation.Decode(map[any]any{"type": "time", "period": "monthly"})
	assert.NoError(err)
	assert.Equal(rotation.Time(rotation.Monthly), trig)

	_, err = rotation.Decode(42)
	assert.ErrorIs(err, rotation.ErrInvalidTrigger, "unsupported shape")
}
