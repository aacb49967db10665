package config

import (
	"errors"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// hclSettings is the HCL schema for Settings:
//
//	full_copy_rules = [".*\\.json$"]
//	exclude_rules   = [".*\\.bak$"]
//	theme {
//	  accent = "#4a90e2"
//	}
type hclSettings struct {
	FullCopyRules []string     `hcl:"full_copy_rules,optional"`
	ExcludeRules  []string     `hcl:"exclude_rules,optional"`
	Theme         *ThemeConfig `hcl:"theme,block"`
}

func decodeHCL(data []byte, filename string, s *Settings) error {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return fmt.Errorf("parsing HCL: %s", diags.Error())
	}

	var raw hclSettings
	diags = gohcl.DecodeBody(file.Body, &hcl.EvalContext{}, &raw)
	if diags.HasErrors() {
		return fmt.Errorf("decoding HCL: %s", diags.Error())
	}

	s.FullCopyRules = raw.FullCopyRules
	s.ExcludeRules = raw.ExcludeRules
	if raw.Theme != nil {
		s.Theme = *raw.Theme
	}
	return nil
}

func encodeHCL(s Settings) ([]byte, error) {
	f := hclwrite.NewEmptyFile()
	body := f.Body()

	body.SetAttributeValue("full_copy_rules", stringList(s.FullCopyRules))
	body.SetAttributeValue("exclude_rules", stringList(s.ExcludeRules))

	if !s.Theme.IsZero() {
		body.AppendNewline()
		block := body.AppendNewBlock("theme", nil).Body()
		for _, tf := range s.Theme.fields() {
			if *tf.val != nil {
				block.SetAttributeValue(tf.name, cty.StringVal(**tf.val))
			}
		}
	}

	out := f.Bytes()
	if len(out) == 0 {
		return nil, errors.New("empty HCL output")
	}
	return out, nil
}

func stringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, v := range items {
		vals[i] = cty.StringVal(v)
	}
	return cty.ListVal(vals)
}
