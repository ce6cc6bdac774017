package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"runtime/debug"
	"strconv"

	. "github.com/cricklet/magics/internal/helpers"
	"github.com/cricklet/magics/internal/magic"
	"github.com/cricklet/magics/internal/server"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintln(os.Stderr, fmt.Sprint(r))
			fmt.Fprintln(os.Stderr, string(debug.Stack()))
		}
	}()

	port := 8002
	if len(os.Args) > 1 {
		p, err := strconv.Atoi(os.Args[1])
		if err != nil {
			panic(err)
		}
		port = p
	}

	options := magic.DefaultOptions()
	options.Logger = &DefaultLogger

	s := server.NewServer(&DefaultLogger, options)
	http.Handle("/", s.Router())

	log.Println("serving at", port)
	err := http.ListenAndServe(fmt.Sprintf(":%v", port), nil)
	if err != nil {
		log.Fatal(err)
	}
}
