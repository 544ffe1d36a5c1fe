package velac

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

type Config map[string]*cfgVal

// NewConfig creates a new configuration object primed with all the
// default values expected by the resolver and the diagnostic sink.
func NewConfig() *Config {
	m := make(Config)
	m.SetBool("resolver.generics_recursive_guard", true)
	m.SetInt("resolver.max_instance_depth", 64)
	m.SetBool("diagnostics.warnings_as_errors", false)
	return &m
}

// LoadConfigFile reads a YAML document at path and overlays its
// scalar entries onto a fresh default configuration. Keys absent from
// the file keep their NewConfig default; keys present in the file
// must already exist as a default (the type is taken from the
// default, so a YAML bool/int/string mismatch is returned as an error).
func LoadConfigFile(path string) (*Config, error) {
	cfg := NewConfig()

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var overrides map[string]any
	if err := yaml.Unmarshal(raw, &overrides); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	for key, v := range overrides {
		existing, ok := (*cfg)[key]
		if !ok {
			return nil, fmt.Errorf("unknown setting `%s` in %s", key, path)
		}
		switch existing.typ {
		case cfgValType_Bool:
			b, ok := v.(bool)
			if !ok {
				return nil, fmt.Errorf("setting `%s` expects a bool", key)
			}
			cfg.SetBool(key, b)
		case cfgValType_Int:
			i, ok := v.(int)
			if !ok {
				return nil, fmt.Errorf("setting `%s` expects an int", key)
			}
			cfg.SetInt(key, i)
		case cfgValType_String:
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("setting `%s` expects a string", key)
			}
			cfg.SetString(key, s)
		}
	}
	return cfg, nil
}

type cfgValType int

const (
	cfgValType_Undefined cfgValType = iota
	cfgValType_Bool
	cfgValType_Int
	cfgValType_String
)

func (vt cfgValType) String() string {
	return map[cfgValType]string{
		cfgValType_Undefined: "undefined",
		cfgValType_Bool:      "bool",
		cfgValType_Int:       "int",
		cfgValType_String:    "string",
	}[vt]
}

type cfgVal struct {
	typ      cfgValType
	asBool   bool
	asInt    int
	asString string
}

// assignType is mostly for preventing programming errors, it
func (v *cfgVal) assignType(vt cfgValType) {
	if v.typ != vt && v.typ != cfgValType_Undefined {
		panic(fmt.Sprintf("Can't assign `%s` to type `%s`", vt, v.typ))
	}
	v.typ = vt
}

func (v *cfgVal) checkType(vt cfgValType) {
	if v.typ != vt {
		panic(fmt.Sprintf("Can't retrieve `%s` from `%s` variable", vt, v.typ))
	}
}

func (c *Config) SetBool(path string, v bool) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Bool)
	(*c)[path].asBool = v
}

func (c *Config) SetInt(path string, v int) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_Int)
	(*c)[path].asInt = v
}

func (c *Config) SetString(path string, v string) {
	(*c)[path] = &cfgVal{}
	(*c)[path].assignType(cfgValType_String)
	(*c)[path].asString = v
}

func (c *Config) GetBool(path string) bool {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Bool)
		return val.asBool
	}
	panic(fmt.Sprintf("Bool setting `%s` does not exist", path))
}

func (c *Config) GetInt(path string) int {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_Int)
		return val.asInt
	}
	panic(fmt.Sprintf("Int setting `%s` does not exist", path))
}

func (c *Config) GetString(path string) string {
	if val, ok := (*c)[path]; ok {
		val.checkType(cfgValType_String)
		return val.asString
	}
	panic(fmt.Sprintf("String setting `%s` does not exist", path))
}
