// Copyright Consensys Software Inc.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with
// the License. You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on
// an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the License for the
// specific language governing permissions and limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0
package source

import (
	"fmt"
	"os"
)

// ReadFiles reads a given set of source files, or produces an error.
func ReadFiles(filenames ...string) ([]File, error) {
	var files []File
	//
	for _, name := range filenames {
		bytes, err := os.ReadFile(name)
		//
		if err != nil {
			return nil, err
		}
		//
		files = append(files, *NewSourceFile(name, bytes))
	}
	//
	return files, nil
}

// File represents a given source file (typically stored on disk).
type File struct {
	// File name for this source file.
	filename string
	// Contents of this file.
	contents []rune
}

// NewSourceFile constructs a new source file from a given byte array.
func NewSourceFile(filename string, bytes []byte) *File {
	// Runes are easier to index during parsing.
	return &File{filename, []rune(string(bytes))}
}

// Filename returns the filename associated with this source file.
func (p *File) Filename() string {
	return p.filename
}

// Contents returns the contents of this source file.
func (p *File) Contents() []rune {
	return p.contents
}

// SyntaxError constructs a syntax error over a given span of this file with a
// given message.
func (p *File) SyntaxError(span Span, msg string) *SyntaxError {
	return &SyntaxError{p, span, msg}
}

// FindFirstEnclosingLine determines the line on which a given span starts.  A
// span starting beyond the end of the file maps to the last physical line.
// Note the returned line need not enclose the whole span, since spans can
// cross line boundaries.
func (p *File) FindFirstEnclosingLine(span Span) Line {
	var (
		start  = 0
		number = 1
	)
	// Count lines up to the start of the span.
	for i := 0; i < len(p.contents) && i < span.start; i++ {
		if p.contents[i] == '\n' {
			start = i + 1
			number++
		}
	}
	// Scan for the end of the enclosing line.
	end := start
	//
	for end < len(p.contents) && p.contents[end] != '\n' {
		end++
	}
	//
	return Line{p.contents[start:end], start, number}
}

// Line identifies a single line within a source file, along with its position
// in that file.
type Line struct {
	// Contents of this line (excluding any line terminator).
	runes []rune
	// Offset of this line within the enclosing file.
	start int
	// Line number, counting from 1.
	number int
}

func (p *Line) String() string {
	return string(p.runes)
}

// Number gets the line number of this line, where the first line in a file
// has number 1.
func (p *Line) Number() int {
	return p.number
}

// Start returns the offset at which this line begins within the enclosing
// file.
func (p *Line) Start() int {
	return p.start
}

// Length returns the number of characters in this line.
func (p *Line) Length() int {
	return len(p.runes)
}

// SyntaxError is a structured error which retains the span of the original
// text on which the error is reported, along with an error message.
type SyntaxError struct {
	srcfile *File
	// Span of the original text on which this error is reported.
	span Span
	// Error message being reported.
	msg string
}

// SourceFile returns the underlying source file that this syntax error covers.
func (p *SyntaxError) SourceFile() *File {
	return p.srcfile
}

// Span returns the span of the original text on which this error is reported.
func (p *SyntaxError) Span() Span {
	return p.span
}

// Message returns the message to be reported.
func (p *SyntaxError) Message() string {
	return p.msg
}

// Error implements the error interface.
func (p *SyntaxError) Error() string {
	return fmt.Sprintf("%d:%d:%s", p.span.Start(), p.span.End(), p.Message())
}

// FirstEnclosingLine determines the line on which this error starts.  See
// File.FindFirstEnclosingLine for the exact semantics.
func (p *SyntaxError) FirstEnclosingLine() Line {
	return p.srcfile.FindFirstEnclosingLine(p.span)
}
