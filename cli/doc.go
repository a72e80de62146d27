// Package cli is the command line of an application documenting its API.
//
// Endpoints are declared in code, so the commands are built around an
// api.Config and embedded into the application's own binary:
//
//	func main() {
//		if err := cli.Execute(config()); err != nil {
//			log.Fatal(err)
//		}
//	}
//
// The generate command writes the document to a file or stdout:
//
//	app generate -o openapi.yaml --validate
//
// Options are resolved from defaults, then the --config file, then flags that
// were set explicitly.
package cli
