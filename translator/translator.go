package translator

import (
	"context"
	"fmt"
	"sync"

	gst "github.com/richinsley/goshadertranslator"
)

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// GetTranslator lazily starts the shared translator. Starting it compiles
// the translator module, so it is only done once per process.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	return translator, initErr
}

// Fragment is a translated fragment shader together with the names its
// uniforms were given in the output.
type Fragment struct {
	Code string
	// Uniforms maps the WebGL2 uniform name to the translated name.
	Uniforms map[string]string
}

// TranslateFragment converts a WebGL2 fragment shader for a desktop GL 4.1
// or an ES 3 context.
func TranslateFragment(source string, gles bool) (*Fragment, error) {
	t, err := GetTranslator()
	if err != nil {
		return nil, fmt.Errorf("failed to start shader translator: %w", err)
	}

	outputFormat := gst.OutputFormatGLSL410
	if gles {
		outputFormat = gst.OutputFormatESSL
	}
	fs, err := t.TranslateShader(source, "fragment", gst.ShaderSpecWebGL2, outputFormat)
	if err != nil {
		return nil, fmt.Errorf("fragment shader translation failed: %w", err)
	}

	f := &Fragment{
		Code:     fs.Code,
		Uniforms: make(map[string]string, len(fs.Variables)),
	}
	for name, v := range fs.Variables {
		f.Uniforms[name] = v.MappedName
	}
	return f, nil
}
