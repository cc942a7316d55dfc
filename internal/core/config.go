package core

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds runtime options for resolving, splitting and reading text files
type Config struct {
	Paths      []string
	Delim      rune
	Encoding   string
	Compress   string
	SkipHeader bool
	NullFormat string
	Columns    []Column
	Advice     int
	Quiet      bool
	Verbose    bool
	LazyQuotes bool
}

// Compression codecs accepted by Compress
var supportedCompress = []string{"gzip", "bzip2", "zip"}

// NewConfig returns a Config initialized with default values
func NewConfig() *Config {
	return &Config{
		Delim:    ',',
		Encoding: "utf-8",
		Advice:   1,
	}
}

// FromFlags updates the Config from a parsed FlagSet. When --job names a
// file, its keys fill in every option not given explicitly on the command
// line. TXTREAD_* environment variables sit between the two.
func (c *Config) FromFlags(fs *pflag.FlagSet) error {
	v := viper.New()
	v.SetEnvPrefix("TXTREAD")
	v.AutomaticEnv()

	for key, flag := range map[string]string{
		"fieldDelimiter": "delim",
		"encoding":       "encoding",
		"compress":       "compress",
		"skipHeader":     "skip-header",
		"nullFormat":     "null-format",
		"advice":         "advice",
		"quiet":          "quiet",
		"verbose":        "verbose",
		"lazyQuotes":     "lazy-quotes",
	} {
		if f := fs.Lookup(flag); f != nil {
			if err := v.BindPFlag(key, f); err != nil {
				return err
			}
		}
	}

	if job, err := fs.GetString("job"); err == nil && job != "" {
		v.SetConfigFile(job)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("read job %s: %w", job, err)
		}
	}

	return c.fromViper(v)
}

func (c *Config) fromViper(v *viper.Viper) error {
	d, err := ParseDelim(v.GetString("fieldDelimiter"))
	if err != nil {
		return err
	}
	c.Delim = d

	c.Encoding = v.GetString("encoding")
	c.Compress = v.GetString("compress")
	c.SkipHeader = v.GetBool("skipHeader")
	c.NullFormat = v.GetString("nullFormat")
	c.Quiet = v.GetBool("quiet")
	c.Verbose = v.GetBool("verbose")
	c.LazyQuotes = v.GetBool("lazyQuotes")
	c.Advice = v.GetInt("advice")

	c.Paths = pathList(v.Get("path"))

	switch raw := v.Get("column"); {
	case raw == nil, isStarColumn(raw):
		c.Columns = nil
	default:
		var cols []Column
		if err := v.UnmarshalKey("column", &cols); err != nil {
			return fmt.Errorf("%w: column: %v", ErrIllegalValue, err)
		}
		c.Columns = cols
	}

	return nil
}

// Validate normalizes and checks the options a read job depends on
func (c *Config) Validate() error {
	if len(c.Paths) == 0 {
		return fmt.Errorf("%w: path", ErrRequiredValue)
	}
	for _, p := range c.Paths {
		if strings.TrimSpace(p) == "" {
			return fmt.Errorf("%w: path contains a blank entry", ErrRequiredValue)
		}
	}

	c.Encoding = strings.TrimSpace(c.Encoding)
	if c.Encoding == "" {
		c.Encoding = "utf-8"
	}
	if _, err := LookupEncoding(c.Encoding); err != nil {
		return err
	}

	c.Compress = strings.ToLower(strings.TrimSpace(c.Compress))
	if c.Compress != "" && !slices.Contains(supportedCompress, c.Compress) {
		return fmt.Errorf("%w: compress %q, supported: %s", ErrIllegalValue, c.Compress, strings.Join(supportedCompress, ", "))
	}

	for i, col := range c.Columns {
		if err := col.validate(); err != nil {
			return fmt.Errorf("column %d: %w", i, err)
		}
	}

	return nil
}

// ParseDelim accepts a single character or one of the names tab, comma, pipe
func ParseDelim(d string) (rune, error) {
	if d == "" || d == "," || d == "comma" {
		return ',', nil
	}
	if d == `\t` || d == "tab" {
		return '\t', nil
	}
	if d == "|" || d == "pipe" {
		return '|', nil
	}

	r := []rune(d)
	if len(r) != 1 {
		return 0, fmt.Errorf("%w: delimiter %q must be a single character or one of: tab, comma, pipe", ErrIllegalValue, d)
	}

	return r[0], nil
}

// pathList accepts path as one string or as a list
func pathList(raw any) []string {
	switch p := raw.(type) {
	case nil:
		return nil
	case string:
		if p == "" {
			return nil
		}
		return []string{p}
	case []string:
		return p
	case []any:
		out := make([]string, 0, len(p))
		for _, e := range p {
			out = append(out, fmt.Sprint(e))
		}
		return out
	default:
		return []string{fmt.Sprint(p)}
	}
}

// isStarColumn reports the column: ["*"] shorthand for "every field"
func isStarColumn(raw any) bool {
	switch c := raw.(type) {
	case string:
		return c == "*"
	case []string:
		return len(c) == 1 && c[0] == "*"
	case []any:
		if len(c) != 1 {
			return false
		}
		s, ok := c[0].(string)
		return ok && s == "*"
	}
	return false
}
