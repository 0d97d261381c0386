package config

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"gopkg.in/yaml.v3"

	"github.com/hamed0406/availcheck/internal/domain"
)

// ConfigError is returned for any endpoint file that cannot be used.
// The process must not start probing when it sees one.
type ConfigError struct {
	Path string
	Err  error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config %s: %v", e.Path, e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// methodToken accepts any HTTP method token, including extension methods
// such as PROPFIND.
var methodToken = regexp.MustCompile("^[!#$%&'*+.^_`|~0-9A-Za-z-]+$")

// LoadEndpoints reads a YAML sequence of endpoint descriptors from path.
// An empty file yields an empty list.
func LoadEndpoints(path string) ([]domain.Endpoint, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: fmt.Errorf("read: %w", err)}
	}
	eps, err := ParseEndpoints(content)
	if err != nil {
		return nil, &ConfigError{Path: path, Err: err}
	}
	return eps, nil
}

// ParseEndpoints decodes, defaults and validates endpoint descriptors.
func ParseEndpoints(content []byte) ([]domain.Endpoint, error) {
	var eps []domain.Endpoint
	if err := yaml.Unmarshal(content, &eps); err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	for i := range eps {
		applyDefaults(&eps[i])
		if err := validateEndpoint(eps[i]); err != nil {
			return nil, fmt.Errorf("endpoint %d (%s): %w", i, eps[i].Name, err)
		}
	}
	if eps == nil {
		eps = []domain.Endpoint{}
	}
	return eps, nil
}

func applyDefaults(ep *domain.Endpoint) {
	ep.Name = strings.TrimSpace(ep.Name)
	ep.URL = strings.TrimSpace(ep.URL)
	ep.Method = strings.ToUpper(strings.TrimSpace(ep.Method))
	if ep.Method == "" {
		ep.Method = http.MethodGet
	}
	if ep.Headers == nil {
		ep.Headers = map[string]string{}
	}
}

func validateEndpoint(ep domain.Endpoint) error {
	return validation.ValidateStruct(&ep,
		validation.Field(&ep.Name, validation.Required),
		validation.Field(&ep.URL,
			validation.Required,
			is.URL,
			validation.By(validateHTTPURL),
		),
		validation.Field(&ep.Method, validation.Match(methodToken)),
	)
}

func validateHTTPURL(value interface{}) error {
	raw, ok := value.(string)
	if !ok {
		return validation.NewError("validation_invalid_type", "must be a string")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return validation.NewError("validation_invalid_url", "must be a valid URL")
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return validation.NewError("validation_invalid_scheme", "URL must use http or https scheme")
	}
	if u.Host == "" {
		return validation.NewError("validation_missing_host", "URL must have a host")
	}
	return nil
}
