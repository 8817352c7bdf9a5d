package shell

import "strings"

// Stage is a single command within a pipeline: its argv (Argv[0] is
// the command name) and the redirections collected for it by the
// redirection parser (spec §4.2).
type Stage struct {
	Argv   []string
	Redirs []Redirection
}

// Pipeline is a sequence of stages connected by top-level pipes (spec
// §4.3). Exactly zero or more redirections may attach to any stage,
// not only the last.
type Pipeline struct {
	Stages []*Stage
}

// ParsePipeline tokenizes a full command line and parses it into a
// Pipeline. It returns (nil, nil) for a blank or whitespace-only line.
func ParsePipeline(line string) (*Pipeline, error) {
	if strings.TrimSpace(line) == "" {
		return nil, nil
	}

	tokens, err := Tokenize(line)
	if err != nil {
		return nil, err
	}
	if len(tokens) == 0 {
		return nil, nil
	}

	segments := SplitByPipe(tokens)
	p := &Pipeline{}
	for _, segTokens := range segments {
		if len(segTokens) == 0 {
			return nil, ErrEmptyPipelineStage
		}
		argv, redirs, err := parseStageTokens(segTokens)
		if err != nil {
			return nil, err
		}
		p.Stages = append(p.Stages, &Stage{Argv: argv, Redirs: redirs})
	}
	return p, nil
}
