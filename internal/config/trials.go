package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/vstrozzi/monkey-3d-game/internal/protocol"
)

// ErrNoTrials is returned when a trial file holds no rounds.
var ErrNoTrials = errors.New("config: trial file is empty")

// LoadTrials reads a trial list. A .jsonl file holds one JSON object per
// line; anything else is YAML: a list of rounds, a mapping with a "trials"
// list, or a single round. Keys missing from a trial take the default
// round's value. Every trial is validated.
func LoadTrials(path string) ([]protocol.RoundConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read trials %s: %w", path, err)
	}

	var trials []protocol.RoundConfig
	if strings.EqualFold(filepath.Ext(path), ".jsonl") {
		trials, err = parseJSONLines(data)
	} else {
		trials, err = parseYAMLTrials(data)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse trials %s: %w", path, err)
	}
	if len(trials) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoTrials, path)
	}

	for i, rc := range trials {
		if err := rc.Validate(); err != nil {
			return nil, fmt.Errorf("trial %d in %s: %w", i+1, path, err)
		}
	}
	return trials, nil
}

// parseJSONLines decodes one trial per non-blank line. JSON is a subset of
// YAML, so each line goes through the YAML decoder.
func parseJSONLines(data []byte) ([]protocol.RoundConfig, error) {
	var trials []protocol.RoundConfig
	sc := bufio.NewScanner(bytes.NewReader(data))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for sc.Scan() {
		line++
		text := strings.TrimSpace(sc.Text())
		if text == "" || strings.HasPrefix(text, "#") {
			continue
		}
		rc := protocol.DefaultRoundConfig()
		if err := yaml.Unmarshal([]byte(text), &rc); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		trials = append(trials, rc)
	}
	if err := sc.Err(); err != nil {
		return nil, err
	}
	return trials, nil
}

func parseYAMLTrials(data []byte) ([]protocol.RoundConfig, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, nil
	}

	root := doc.Content[0]
	var items []*yaml.Node
	switch root.Kind {
	case yaml.SequenceNode:
		items = root.Content
	case yaml.MappingNode:
		if !hasKey(root, "trials") {
			// A single round, as printed by the history command.
			items = []*yaml.Node{root}
			break
		}
		var wrapper struct {
			Trials []yaml.Node `yaml:"trials"`
		}
		if err := root.Decode(&wrapper); err != nil {
			return nil, err
		}
		for i := range wrapper.Trials {
			items = append(items, &wrapper.Trials[i])
		}
	default:
		return nil, fmt.Errorf("line %d: expected a list of trials", root.Line)
	}

	trials := make([]protocol.RoundConfig, 0, len(items))
	for _, n := range items {
		rc := protocol.DefaultRoundConfig()
		if err := n.Decode(&rc); err != nil {
			return nil, fmt.Errorf("line %d: %w", n.Line, err)
		}
		trials = append(trials, rc)
	}
	return trials, nil
}

func hasKey(m *yaml.Node, key string) bool {
	for i := 0; i+1 < len(m.Content); i += 2 {
		if m.Content[i].Value == key {
			return true
		}
	}
	return false
}
