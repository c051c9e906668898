package prefabs

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	CraftFile = "craft.yaml"
	FieldFile = "field.yaml"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

// CraftSpec describes the player craft.
type CraftSpec struct {
	Name        string         `yaml:"name"`
	Mass        float64        `yaml:"mass"`
	Size        SizeSpec       `yaml:"size"`
	Spawn       SpawnSpec      `yaml:"spawn"`
	ThrustForce float64        `yaml:"thrust_force"`
	Sprite      SpriteSpec     `yaml:"sprite"`
	Audio       []AudioSpec    `yaml:"audio"`
	EngineSound EngineSpec     `yaml:"engine_sound"`
	Fire        FireSpec       `yaml:"fire"`
	Projectile  ProjectileSpec `yaml:"projectile"`
}

func LoadCraftSpec() (*CraftSpec, error) {
	spec, err := LoadSpec[CraftSpec](CraftFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

// FieldSpec describes the play-field surface.
type FieldSpec struct {
	Width      int        `yaml:"width"`
	Height     int        `yaml:"height"`
	Background *YAMLColor `yaml:"background"`
}

func LoadFieldSpec() (*FieldSpec, error) {
	spec, err := LoadSpec[FieldSpec](FieldFile)
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type SizeSpec struct {
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// SpawnSpec positions the craft as fractions of the free field area.
type SpawnSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type SpriteSpec struct {
	Image string `yaml:"image"`
}

type AudioSpec struct {
	Name   string  `yaml:"name"`
	File   string  `yaml:"file"`
	Volume float64 `yaml:"volume"`
}

// AudioByName returns the entry with the given name.
func (s *CraftSpec) AudioByName(name string) (AudioSpec, bool) {
	for _, a := range s.Audio {
		if a.Name == name {
			return a, true
		}
	}
	return AudioSpec{}, false
}

type EngineSpec struct {
	Audio string  `yaml:"audio"`
	Speed float64 `yaml:"speed"`
}

type FireSpec struct {
	Mode           string `yaml:"mode"`
	CooldownFrames int    `yaml:"cooldown_frames"`
}

type ProjectileSpec struct {
	LifeFrames int  `yaml:"life_frames"`
	Max        int  `yaml:"max"`
	Cull       bool `yaml:"cull"`
}

type YAMLColor struct {
	color.Color
}

func (c *YAMLColor) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("color must be a string")
	}

	s := strings.TrimPrefix(value.Value, "#")

	if len(s) != 6 && len(s) != 8 {
		return fmt.Errorf("invalid color format: %s", value.Value)
	}

	parse := func(start int) (uint8, error) {
		v, err := strconv.ParseUint(s[start:start+2], 16, 8)
		return uint8(v), err
	}

	r, err := parse(0)
	if err != nil {
		return err
	}
	g, err := parse(2)
	if err != nil {
		return err
	}
	b, err := parse(4)
	if err != nil {
		return err
	}

	a := uint8(255)
	if len(s) == 8 {
		a, err = parse(6)
		if err != nil {
			return err
		}
	}

	c.Color = color.NRGBA{R: r, G: g, B: b, A: a}
	return nil
}
