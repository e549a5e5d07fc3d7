package main

import (
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"

	"github.com/teris-io/cli"

	"github.com/Le36/ezcompiler/pkg/compiler"
	"github.com/Le36/ezcompiler/pkg/driver"
	"github.com/Le36/ezcompiler/pkg/httpapi"
	"github.com/Le36/ezcompiler/pkg/lexer"
	"github.com/Le36/ezcompiler/pkg/parser"
)

var Description = strings.ReplaceAll(`
ezc compiles programs written in the language into x86-64 assembly. The first
argument selects a command: "compile" assembles and links the result into a
native executable (skippable with --no-link), "interpret" tokenizes and
parses the program and prints the resulting tokens and syntax tree without
running anything, "serve" runs the HTTP collaborator. With no input file,
source is read from standard input.
`, "\n", " ")

var Ezc = cli.New(Description).
	WithArg(cli.NewArg("command", "One of: compile, interpret, serve")).
	WithArg(cli.NewArg("input_file", "Source file to process; omit to read standard input or to run serve").AsOptional()).
	WithOption(cli.NewOption("output", "Executable output path for the compile command").WithType(cli.TypeString)).
	WithOption(cli.NewOption("no-link", "Skip invoking the assembler/linker, emit assembly only").WithType(cli.TypeBool)).
	WithOption(cli.NewOption("addr", "Listen address for the serve command").WithType(cli.TypeString)).
	WithAction(Handler)

func defaultHTTPAddr() string {
	if addr, ok := os.LookupEnv("EZC_HTTP_ADDR"); ok {
		return addr
	}
	return ":5000"
}

func readSource(inputFile string) (string, error) {
	if inputFile == "" {
		data, err := io.ReadAll(os.Stdin)
		return string(data), err
	}
	data, err := os.ReadFile(inputFile)
	return string(data), err
}

func Handler(args []string, options map[string]string) int {
	if len(args) == 0 {
		fmt.Println("Error: command argument missing")
		return 1
	}

	command, inputFile := args[0], ""
	if len(args) > 1 {
		inputFile = args[1]
	}

	switch command {
	case "compile":
		return runCompile(inputFile, options)
	case "interpret":
		return runInterpret(inputFile)
	case "serve":
		return runServe(options)
	default:
		fmt.Printf("Error: unknown command: %s\n", command)
		return 1
	}
}

func runCompile(inputFile string, options map[string]string) int {
	source, err := readSource(inputFile)
	if err != nil {
		fmt.Printf("ERROR: unable to read source: %s\n", err)
		return -1
	}

	result, err := compiler.Compile(source)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}

	if options["no-link"] != "" {
		fmt.Print(result.Assembly)
		return 0
	}

	outputPath := options["output"]
	if outputPath == "" {
		outputPath = "a.out"
	}
	if err := driver.Assemble(result.Assembly, outputPath); err != nil {
		fmt.Printf("ERROR: assembler/linker failed: %s\n", err)
		return -1
	}

	return 0
}

// runInterpret tokenizes and parses source only: no type-checking, no IR,
// no assembly, nothing is ever run. It prints the resulting token stream
// and syntax tree for inspection.
func runInterpret(inputFile string) int {
	source, err := readSource(inputFile)
	if err != nil {
		fmt.Printf("ERROR: unable to read source: %s\n", err)
		return -1
	}

	tokens := lexer.Tokenize(inputFile, source)
	root, err := parser.Parse(tokens)
	if err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}

	fmt.Println("-- tokens --")
	for _, tok := range tokens {
		fmt.Println(tok.String())
	}
	fmt.Println("-- ast --")
	fmt.Printf("%#v\n", root)
	return 0
}

func runServe(options map[string]string) int {
	addr := options["addr"]
	if addr == "" {
		addr = defaultHTTPAddr()
	}

	server := httpapi.NewServer(true)
	mux := http.NewServeMux()
	server.Routes(mux)

	fmt.Printf("listening on %s\n", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Printf("ERROR: %s\n", err)
		return -1
	}
	return 0
}

func main() { os.Exit(Ezc.Run(os.Args, os.Stdout)) }
