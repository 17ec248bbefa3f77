package hcl

import (
	"context"
	"fmt"
	"os"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"

	"github.com/vk/pipelayer/internal/ctxlog"
	"github.com/vk/pipelayer/internal/fsutil"
	"github.com/vk/pipelayer/internal/pipeline"
)

// hclStep represents a single 'step' block for initial decoding.
type hclStep struct {
	ID   string   `hcl:"id,label"`
	Body hcl.Body `hcl:",remain"`
}

// hclPipelineFile represents the top-level structure of a pipeline file.
type hclPipelineFile struct {
	Steps []*hclStep `hcl:"step,block"`
}

// stepBodySchema describes the attributes a step block may carry.
var stepBodySchema = &hcl.BodySchema{
	Attributes: []hcl.AttributeSchema{
		{Name: "title"},
		{Name: "depends_on"},
	},
}

// LoadPipeline reads step definitions from the given path, which may be a
// single .hcl file or a directory searched recursively. Steps are returned
// in file order, files in lexicographic path order, so the same workspace
// always yields the same definition sequence.
func LoadPipeline(ctx context.Context, path string) ([]*pipeline.Step, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Loading pipeline definitions.", "path", path)

	files, err := findPipelineFiles(path)
	if err != nil {
		return nil, fmt.Errorf("failed to find pipeline files in %s: %w", path, err)
	}
	if len(files) == 0 {
		logger.Warn("No .hcl pipeline files found in path, returning empty definition set.", "path", path)
		return nil, nil
	}

	parser := hclparse.NewParser()
	var steps []*pipeline.Step
	for _, file := range files {
		fileSteps, err := loadFile(file, parser)
		if err != nil {
			return nil, err
		}
		steps = append(steps, fileSteps...)
	}

	logger.Debug("Pipeline definitions loaded.", "files", len(files), "steps", len(steps))
	return steps, nil
}

func findPipelineFiles(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return []string{path}, nil
	}
	return fsutil.FindFilesByExtension(path, ".hcl")
}

// loadFile parses a single HCL file and returns the steps found within it.
func loadFile(filePath string, parser *hclparse.Parser) ([]*pipeline.Step, error) {
	hclFile, diags := parser.ParseHCLFile(filePath)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse %s: %w", filePath, diags)
	}

	var parsedFile hclPipelineFile
	diags = gohcl.DecodeBody(hclFile.Body, nil, &parsedFile)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, diags)
	}

	steps := make([]*pipeline.Step, 0, len(parsedFile.Steps))
	for _, parsedStep := range parsedFile.Steps {
		step, err := decodeStep(parsedStep)
		if err != nil {
			return nil, fmt.Errorf("error in step %q of %s: %w", parsedStep.ID, filePath, err)
		}
		steps = append(steps, step)
	}
	return steps, nil
}

// decodeStep evaluates a step block's attributes into a pipeline.Step. The
// title defaults to the step id when absent.
func decodeStep(block *hclStep) (*pipeline.Step, error) {
	content, diags := block.Body.Content(stepBodySchema)
	if diags.HasErrors() {
		return nil, diags
	}

	step := &pipeline.Step{
		ID:    block.ID,
		Title: block.ID,
	}

	if attr, ok := content.Attributes["title"]; ok {
		title, err := evalString(attr.Expr)
		if err != nil {
			return nil, fmt.Errorf("invalid title: %w", err)
		}
		step.Title = title
	}

	if attr, ok := content.Attributes["depends_on"]; ok {
		deps, err := evalStringList(attr.Expr)
		if err != nil {
			return nil, fmt.Errorf("invalid depends_on: %w", err)
		}
		step.DependsOn = deps
	}

	return step, nil
}

func evalString(expr hcl.Expression) (string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return "", diags
	}
	val, err := convert.Convert(val, cty.String)
	if err != nil {
		return "", err
	}
	if val.IsNull() {
		return "", fmt.Errorf("value must not be null")
	}
	return val.AsString(), nil
}

func evalStringList(expr hcl.Expression) ([]string, error) {
	val, diags := expr.Value(nil)
	if diags.HasErrors() {
		return nil, diags
	}
	val, err := convert.Convert(val, cty.List(cty.String))
	if err != nil {
		return nil, err
	}
	if val.IsNull() {
		return nil, nil
	}

	var out []string
	for it := val.ElementIterator(); it.Next(); {
		_, ev := it.Element()
		if ev.IsNull() {
			return nil, fmt.Errorf("list elements must not be null")
		}
		out = append(out, ev.AsString())
	}
	return out, nil
}
