package agent

import (
	"encoding/json"
	"fmt"
	"reflect"

	"github.com/samuelfneumann/rlharness/environment"
)

// Type represents a specific type of an agent Config. Config's with
// this type can create Agents of the corresponding type.
type Type string

const (
	CrossEntropyMLP  Type = "CrossEntropy-MLP"
	QLearningTabular Type = "QLearning-Tabular"
)

// Config represents a configuration for creating an agent
type Config interface {
	// CreateAgent creates the agent that the config describes
	CreateAgent(env environment.Environment, seed uint64) (Agent, error)

	// Validate returns an error describing whether or not the
	// configuration is valid or not.
	Validate() error

	// Type returns the type of agent the Config creates
	Type() Type
}

// Registered types with the package. Once a Type has been registered
// with this map, a TypedConfig with that type can be unmarshalled.
//
// No Type's are registered with this package upon initialization.
// Each agent package registers its own Config to avoid circular
// imports.
var registeredTypes = make(map[Type]reflect.Type)

// Register registers an agent's Type with a concrete Config type so
// that TypedConfigs of type agentType are unmarshalled into the
// concrete type of config.
func Register(agentType Type, config Config) {
	t := reflect.TypeOf(config)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	registeredTypes[agentType] = t
}

// TypedConfig wraps a Config so that it can be JSON marshalled and
// unmarshalled into its underlying concrete type
type TypedConfig struct {
	Type
	Config
}

// NewTypedConfig returns a new TypedConfig wrapping c
func NewTypedConfig(c Config) TypedConfig {
	return TypedConfig{Type: c.Type(), Config: c}
}

// UnmarshalJSON implements the json.Unmarshaler interface
func (t *TypedConfig) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type   Type
		Config json.RawMessage
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	ty, ok := registeredTypes[raw.Type]
	if !ok {
		return fmt.Errorf("unmarshalJSON: agent type %q not registered",
			raw.Type)
	}

	value := reflect.New(ty)
	if err := json.Unmarshal(raw.Config, value.Interface()); err != nil {
		return fmt.Errorf("unmarshalJSON: %v", err)
	}

	config, ok := value.Interface().(Config)
	if !ok {
		config, ok = value.Elem().Interface().(Config)
	}
	if !ok {
		return fmt.Errorf("unmarshalJSON: %v does not implement Config", ty)
	}

	t.Type = raw.Type
	t.Config = config
	return nil
}
