/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/peterh/liner"

	"dirpx.dev/rtti"
	"dirpx.dev/rtti/meta"
)

func repl(out io.Writer, history string) int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	if f, err := os.Open(history); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(history); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	fmt.Fprintln(out, usage())
	for {
		line, err := ln.Prompt("rtti> ")
		if err != nil {
			if errors.Is(err, io.EOF) || errors.Is(err, liner.ErrPromptAborted) {
				return 0
			}
			slog.Error("reading input", slog.Any("error", err))
			return 1
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		ln.AppendHistory(line)
		if !exec(out, line) {
			return 0
		}
	}
}

// exec runs one command and reports whether the loop should continue.
func exec(out io.Writer, line string) bool {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)
	switch cmd {
	case ":quit", ":q":
		return false
	case ":types":
		for _, e := range rtti.Registry().Entries() {
			fmt.Fprintln(out, e.Name)
		}
	case ":type":
		t := rtti.GetType(arg)
		if t == nil {
			fmt.Fprintf(out, "unknown type %q\n", arg)
			break
		}
		describe(out, t)
	case ":derived":
		if rtti.GetType(arg) == nil {
			fmt.Fprintf(out, "unknown type %q\n", arg)
			break
		}
		for _, d := range rtti.GetDerivedTypes(arg) {
			fmt.Fprintln(out, d.FullName())
		}
	default:
		fmt.Fprintln(out, usage())
	}
	return true
}

func describe(out io.Writer, t *meta.Type) {
	kind := "value"
	switch {
	case t.IsEnum():
		kind = "enum"
	case t.IsClass():
		kind = "class"
	}
	fmt.Fprintf(out, "%s %s\n", kind, t.FullName())
	if b := t.BaseType(); b != nil {
		fmt.Fprintf(out, "  base %s\n", b.FullName())
	}
	for _, i := range t.Interfaces() {
		fmt.Fprintf(out, "  implements %s\n", i.FullName())
	}
	for _, g := range t.GenericArguments() {
		fmt.Fprintf(out, "  generic %s\n", g.FullName())
	}
	for _, f := range t.Fields() {
		ro := ""
		if !f.CanWrite() {
			ro = " (read-only)"
		}
		fmt.Fprintf(out, "  %s%s\n", f, ro)
	}
	for _, m := range t.Methods() {
		static := ""
		if m.IsStatic() {
			static = "static "
		}
		fmt.Fprintf(out, "  %smethod %s\n", static, m)
	}
	for _, c := range t.Constructors() {
		fmt.Fprintf(out, "  ctor %s\n", c)
	}
	for _, e := range t.EnumValues() {
		fmt.Fprintf(out, "  %s = %d\n", e.Name, e.Value)
	}
}
