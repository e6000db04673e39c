package utils

import (
	"github.com/BurntSushi/toml"
	"github.com/charmbracelet/log"
)

// TOMLTable is a decoded TOML table kept as raw values,
// used to salvage the valid keys of a config that does not decode cleanly.
type TOMLTable map[string]any

// LoadTOMLFile decodes configPath into v.
// It returns the dotted keys present in the file that no field of v took.
func LoadTOMLFile(configPath string, v any) ([]string, error) {
	meta, err := toml.DecodeFile(configPath, v)
	if err != nil {
		log.Warnf("TOML parsing error in config file %s: %v. Attempting partial recovery...", configPath, err)
		return nil, err
	}

	var unknown []string
	for _, key := range meta.Undecoded() {
		unknown = append(unknown, key.String())
	}
	return unknown, nil
}

// ParseTOMLTable decodes configPath without a target struct.
// It only fails when the file is not valid TOML at all.
func ParseTOMLTable(configPath string) (TOMLTable, error) {
	table := make(TOMLTable)
	if _, err := toml.DecodeFile(configPath, (*map[string]any)(&table)); err != nil {
		log.Warnf("Could not parse any valid configuration from %s: %v", configPath, err)
		return nil, err
	}
	return table, nil
}

// Section returns the sub-table called name, if there is one.
func (t TOMLTable) Section(name string) (TOMLTable, bool) {
	section, ok := t[name].(map[string]any)
	return TOMLTable(section), ok
}

// SetInt stores the integer under key into dst. Other types leave dst alone.
func (t TOMLTable) SetInt(key string, dst *int) bool {
	val, ok := t[key].(int64)
	if ok {
		*dst = int(val)
	}
	return ok
}

// SetBool stores the bool under key into dst.
func (t TOMLTable) SetBool(key string, dst *bool) bool {
	val, ok := t[key].(bool)
	if ok {
		*dst = val
	}
	return ok
}

// SetString stores the string under key into dst.
func (t TOMLTable) SetString(key string, dst *string) bool {
	val, ok := t[key].(string)
	if ok {
		*dst = val
	}
	return ok
}
