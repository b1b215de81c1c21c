package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jRPC "github.com/0xPolygon/cdk-rpc/rpc"
	"github.com/0xPolygon/msgbridge/bridgestate"
	"github.com/0xPolygon/msgbridge/log"
	"github.com/0xPolygon/msgbridge/messaging"
	"github.com/0xPolygon/msgbridge/tokenbridge"
	"github.com/mitchellh/mapstructure"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"
	"github.com/urfave/cli/v2"
)

const (
	// FlagCfg is the flag for cfg.
	FlagCfg = "cfg"
	// FlagComponents is the flag for components.
	FlagComponents = "components"
	// FlagSaveConfigPath is the flag to save the final configuration file
	FlagSaveConfigPath = "save-config-path"
	// FlagMinConfig is the flag to print only the mandatory vars on the config command
	FlagMinConfig = "min"

	EnvVarPrefix       = "MSGBRIDGE"
	ConfigType         = "toml"
	SaveConfigFileName = "msgbridge_config.toml"

	DefaultCreationFilePermissions = os.FileMode(0600)
)

type ForbiddenField struct {
	FieldName string
	Reason    string
}

var (
	forbiddenFieldsOnConfig = []ForbiddenField{
		{
			FieldName: "tokenbridge.l1bridge",
			Reason:    "TokenBridge.L1Bridge was split, use TokenBridge.L1TokenBridge and TokenBridge.L1NativeBridge",
		},
		{
			FieldName: "snapshot.maxmessages",
			Reason:    "Snapshot.MaxMessages is deprecated, use Snapshot.MaxOutgoingMessages",
		},
	}
)

/*
Config represents the configuration of the bridge node.
The file is [TOML format], JSON files are converted to TOML before merging.

[TOML format]: https://en.wikipedia.org/wiki/TOML
*/
type Config struct {
	// Configure Log level for all the services, allow also to store the logs in a file
	Log log.Config
	// RPC is the config for the RPC server
	RPC jRPC.Config
	// Messaging is the config of the messaging service
	Messaging messaging.Config
	// TokenBridge is the config of the token bridge state machine
	TokenBridge tokenbridge.Config
	// Snapshot is the config of the state persistence
	Snapshot bridgestate.Config
}

// Load loads the configuration
func Load(ctx *cli.Context) (*Config, error) {
	configFilePath := ctx.StringSlice(FlagCfg)
	filesData, err := readFiles(configFilePath)
	if err != nil {
		return nil, fmt.Errorf("error reading files:  Err:%w", err)
	}
	saveConfigPath := ctx.String(FlagSaveConfigPath)
	return LoadFile(filesData, saveConfigPath)
}

func readFiles(files []string) ([]FileData, error) {
	result := make([]FileData, 0, len(files))
	for _, file := range files {
		content, err := os.ReadFile(file)
		if err != nil {
			return nil, fmt.Errorf("error reading file content: %s. Err:%w", file, err)
		}
		fileContent := string(content)
		if ext := getFileExtension(file); ext != ConfigType {
			fileContent, err = convertFileToToml(fileContent, ext)
			if err != nil {
				return nil, fmt.Errorf("error converting file: %s from %s to TOML. Err:%w", file, ext, err)
			}
		}
		result = append(result, FileData{Name: file, Content: fileContent})
	}
	return result, nil
}

func getFileExtension(fileName string) string {
	return strings.TrimPrefix(filepath.Ext(fileName), ".")
}

// LoadFile renders the default values together with the given files and decodes the
// result. If saveConfigPath is set the rendered file is written there.
func LoadFile(files []FileData, saveConfigPath string) (*Config, error) {
	fileData := make([]FileData, 0, len(files)+2) //nolint:mnd
	fileData = append(fileData, FileData{Name: "default_vars", Content: DefaultVars})
	fileData = append(fileData, FileData{Name: "default_values", Content: DefaultValues})
	fileData = append(fileData, files...)

	renderedCfg, err := NewConfigRender(fileData, EnvVarPrefix).Render()
	if err != nil {
		return nil, err
	}
	if saveConfigPath != "" {
		fullPath := filepath.Join(saveConfigPath, SaveConfigFileName)
		if err := os.WriteFile(fullPath, []byte(renderedCfg), DefaultCreationFilePermissions); err != nil {
			err = fmt.Errorf("error writing config file: %s. Err: %w", fullPath, err)
			log.Error(err)
			return nil, err
		}
		log.Infof("rendered config saved to %s", fullPath)
	}
	return LoadFileFromString(renderedCfg, ConfigType)
}

// LoadFileFromString decodes an already rendered config
func LoadFileFromString(configFileData string, configType string) (*Config, error) {
	cfg := &Config{}
	if err := loadString(cfg, configFileData, configType, EnvVarPrefix); err != nil {
		return nil, err
	}
	return cfg, nil
}

// SaveConfigToString renders the decoded config back to TOML
func SaveConfigToString(cfg Config) (string, error) {
	b, err := toml.Marshal(cfg)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func loadString(cfg *Config, configData string, configType string, envPrefix string) error {
	v := viper.New()
	v.SetConfigType(configType)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	if err := v.ReadConfig(bytes.NewBufferString(configData)); err != nil {
		return err
	}
	decodeHooks := []viper.DecoderConfigOption{
		// this allows arrays to be decoded from env var separated by ",", example: MY_VAR="value1,value2,value3"
		viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
			mapstructure.TextUnmarshallerHookFunc(), mapstructure.StringToSliceHookFunc(","))),
	}
	if err := v.Unmarshal(cfg, decodeHooks...); err != nil {
		return err
	}

	for _, field := range v.AllKeys() {
		if forbidden := getForbiddenField(field); forbidden != nil {
			log.Warnf("forbidden field %s in config file: %s", field, forbidden.Reason)
		}
	}
	return nil
}

func getForbiddenField(fieldName string) *ForbiddenField {
	for _, forbiddenField := range forbiddenFieldsOnConfig {
		if forbiddenField.FieldName == fieldName || strings.HasPrefix(fieldName, forbiddenField.FieldName) {
			return &forbiddenField
		}
	}
	return nil
}
