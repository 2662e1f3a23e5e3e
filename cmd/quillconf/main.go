// Command quillconf inspects Quill's layered configuration.
package main

import "github.com/quill-editor/quill/internal/cli"

func main() {
	cli.Execute()
}
