// Command webbuild bundles the browser client for Legacy Guardians:
// web/src/main.ts becomes the single web/client.js that the server embeds.
// Run from internal/server via go generate.
package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/evanw/esbuild/pkg/api"
)

const (
	entryPoint = "web/src/main.ts"
	outFile    = "web/client.js"
)

func main() {
	log.SetPrefix("webbuild: ")
	log.SetFlags(0)

	wd, err := os.Getwd()
	if err != nil {
		log.Fatalf("getwd: %v", err)
	}

	result := api.Build(api.BuildOptions{
		EntryPoints:   []string{filepath.Join(wd, filepath.FromSlash(entryPoint))},
		Outfile:       filepath.Join(wd, filepath.FromSlash(outFile)),
		AbsWorkingDir: wd,
		Bundle:        true,
		Format:        api.FormatIIFE,
		Target:        api.ES2018,
		Platform:      api.PlatformBrowser,
		LogLevel:      api.LogLevelInfo,
		Sourcemap:     api.SourceMapInline,
		Write:         true,
		Loader: map[string]api.Loader{
			".ts": api.LoaderTS,
		},
	})
	for _, warning := range result.Warnings {
		log.Printf("warning: %s", warning.Text)
	}
	if len(result.Errors) > 0 {
		for _, message := range result.Errors {
			log.Printf("error: %s", message.Text)
		}
		log.Fatalf("%s: build failed with %d error(s)", entryPoint, len(result.Errors))
	}
	log.Printf("bundled %s -> %s", entryPoint, outFile)
}
