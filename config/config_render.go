package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"slices"
	"strings"

	"github.com/0xPolygon/msgbridge/log"
	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
	"github.com/valyala/fasttemplate"
)

const (
	startTag = "{{"
	endTag   = "}}"
)

var (
	ErrCycleVars                 = errors.New("cycle vars")
	ErrMissingVars               = errors.New("missing vars")
	ErrUnsupportedConfigFileType = errors.New("unsupported config file type")

	// A = {{B}} is not valid TOML, it is quoted and marked as A = "{{B:int}}" while merging
	unquotedVarRe = regexp.MustCompile(`=\s*\{\{([^}:]+)\}\}`)
	quotedVarRe   = regexp.MustCompile(`=\s*\"\{\{([^}:]+:int)\}\}\"`)
	typeMarkRe    = regexp.MustCompile(`\{\{([^}:]+:int)\}\}`)
)

type FileData struct {
	Name    string
	Content string
}

// ConfigRender merges config files, later files override earlier ones, and resolves
// the {{var}} references between values. A var can be overridden by the environment
// variable <EnvPrefix>_<var with dots as underscores>.
type ConfigRender struct {
	FilesData []FileData
	// LookupEnvFunc resolves environment variables, typically os.LookupEnv
	LookupEnvFunc func(key string) (string, bool)
	EnvPrefix     string
}

func NewConfigRender(filesData []FileData, envPrefix string) *ConfigRender {
	return &ConfigRender{
		FilesData:     filesData,
		LookupEnvFunc: os.LookupEnv,
		EnvPrefix:     envPrefix,
	}
}

// Render merges all the files and resolves the vars
func (c *ConfigRender) Render() (string, error) {
	merged, err := c.Merge()
	if err != nil {
		return "", fmt.Errorf("fail to merge files. Err: %w", err)
	}
	return c.ResolveVars(merged)
}

func (c *ConfigRender) Merge() (string, error) {
	k := koanf.New(".")
	for _, data := range c.FilesData {
		content := markVars(data.Content)
		if err := k.Load(rawbytes.Provider([]byte(content)), toml.Parser()); err != nil {
			log.Errorf("error loading file %s. Err:%v.FileData: %v", data.Name, err, content)
			return "", fmt.Errorf("fail to load converted template %s to toml. Err: %w", data.Name, err)
		}
	}
	marshaled, err := k.Marshal(toml.Parser())
	if err != nil {
		return "", fmt.Errorf("fail to marshal to toml. Err: %w", err)
	}
	return unquoteVars(string(marshaled)), nil
}

// ResolveVars replaces the vars by their values. A var that is not defined anywhere
// returns ErrMissingVars, vars depending on each other (A = {{B}}, B = {{A}}) that
// no environment variable breaks return ErrCycleVars.
func (c *ConfigRender) ResolveVars(fullConfigData string) (string, error) {
	tpl, values, err := c.readTemplateAndValues(fullConfigData)
	if err != nil {
		return "", err
	}
	rendered := removeTypeMarks(c.executeTemplate(tpl, values))
	if unresolved := c.GetUnresolvedVars(tpl, values); len(unresolved) > 0 {
		return rendered, fmt.Errorf("missing vars: %v. Err: %w", unresolved, ErrMissingVars)
	}
	final, err := c.ResolveCycle(rendered)
	if err != nil {
		return fullConfigData, err
	}
	return final, nil
}

// ResolveCycle renders the data until no var is left. Every pass must reduce the
// number of vars, otherwise there is a cycle.
func (c *ConfigRender) ResolveCycle(partiallyResolved string) (string, error) {
	data := unquoteVars(partiallyResolved)
	pending := c.GetVars(data)
	if len(pending) == 0 {
		return partiallyResolved, nil
	}
	log.Debugf("ResolveCycle: pending vars: %v", pending)
	for len(pending) > 0 {
		previous := pending
		tpl, values, err := c.readTemplateAndValues(data)
		if err != nil {
			log.Errorf("resolveCycle: fails readTemplateAndValues. Err: %v. Data:%s", err, data)
			return "", fmt.Errorf("fails to read template ResolveCycle. Err: %w", err)
		}
		data = removeTypeMarks(unquoteVars(c.executeTemplate(tpl, values)))
		pending = c.GetVars(data)
		if len(pending) == len(previous) {
			return partiallyResolved, fmt.Errorf("not resolved cycle vars: %v. Err: %w", pending, ErrCycleVars)
		}
	}
	return data, nil
}

// readTemplateAndValues expects the vars unquoted: A={{B}}, not A="{{B}}"
func (c *ConfigRender) readTemplateAndValues(data string) (*fasttemplate.Template, map[string]interface{}, error) {
	tpl, err := fasttemplate.NewTemplate(data, startTag, endTag)
	if err != nil {
		return nil, nil, fmt.Errorf("fail to load template. Err:%w", err)
	}
	out := markVars(data)
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider([]byte(out)), toml.Parser()); err != nil {
		return nil, nil, fmt.Errorf("error parsing template values. Content: %s. Err: %w", out, err)
	}
	return tpl, k.All(), nil
}

func markVars(data string) string {
	return unquotedVarRe.ReplaceAllString(data, `= "{{${1}:int}}"`)
}

func unquoteVars(data string) string {
	return quotedVarRe.ReplaceAllStringFunc(data, func(match string) string {
		submatch := quotedVarRe.FindStringSubmatch(match)
		if len(submatch) > 1 {
			return "= " + startTag + strings.Split(submatch[1], ":")[0] + endTag
		}
		return match
	})
}

func removeTypeMarks(data string) string {
	return typeMarkRe.ReplaceAllStringFunc(data, func(match string) string {
		submatch := typeMarkRe.FindStringSubmatch(match)
		if len(submatch) > 1 {
			return startTag + strings.Split(submatch[1], ":")[0] + endTag
		}
		return match
	})
}

func (c *ConfigRender) executeTemplate(tpl *fasttemplate.Template, values map[string]interface{}) string {
	return tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if v, ok := c.lookupEnv(tag); ok {
			return w.Write([]byte(v))
		}
		if v, ok := values[tag]; ok {
			return fmt.Fprintf(w, "%v", v)
		}
		return w.Write([]byte(startTag + tag + endTag))
	})
}

// GetUnresolvedVars returns the vars of the template that neither the values nor the
// environment define
func (c *ConfigRender) GetUnresolvedVars(tpl *fasttemplate.Template, values map[string]interface{}) []string {
	var unresolved []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		if _, ok := c.lookupEnv(tag); ok {
			return 0, nil
		}
		if _, ok := values[tag]; !ok && !slices.Contains(unresolved, tag) {
			unresolved = append(unresolved, tag)
		}
		return 0, nil
	})
	return unresolved
}

// GetVars returns the vars in configData
func (c *ConfigRender) GetVars(configData string) []string {
	tpl, err := fasttemplate.NewTemplate(configData, startTag, endTag)
	if err != nil {
		return []string{}
	}
	var vars []string
	tpl.ExecuteFuncString(func(w io.Writer, tag string) (int, error) {
		vars = append(vars, tag)
		return 0, nil
	})
	return vars
}

func (c *ConfigRender) lookupEnv(tag string) (string, bool) {
	return c.LookupEnvFunc(c.EnvPrefix + "_" + strings.ReplaceAll(tag, ".", "_"))
}

func convertFileToToml(fileData string, fileType string) (string, error) {
	switch strings.ToLower(fileType) {
	case "json":
		k := koanf.New(".")
		if err := k.Load(rawbytes.Provider([]byte(fileData)), json.Parser()); err != nil {
			return fileData, fmt.Errorf("error loading json file. Err: %w", err)
		}
		tomlData, err := toml.Parser().Marshal(k.Raw())
		if err != nil {
			return fileData, fmt.Errorf("error converting json to toml. Err: %w", err)
		}
		return string(tomlData), nil
	case "yml", "yaml", "ini":
		return fileData, fmt.Errorf("cant convert from %s to TOML. Err: %w", fileType, ErrUnsupportedConfigFileType)
	default:
		log.Warnf("filetype %s unknown, assuming is a TOML file", fileType)
		return fileData, nil
	}
}
