/*
 * PCRTC - NVRAM image tool.
 *
 * Copyright 2024, Richard Cornwell
 *
 * Permission is hereby granted, free of charge, to any person obtaining a copy
 * of this software and associated documentation files (the "Software"), to deal
 * in the Software without restriction, including without limitation the rights
 * to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
 * copies of the Software, and to permit persons to whom the Software is
 * furnished to do so, subject to the following conditions:
 *
 * The above copyright notice and this permission notice shall be included in
 * all copies or substantial portions of the Software.
 *
 * THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
 * IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
 * FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
 * AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
 * LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
 * OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
 * SOFTWARE.
 *
 */

package main

import (
	"io"
	"os"

	"github.com/alecthomas/kong"
)

// Globals passed to every command.
type Globals struct {
	Out io.Writer // Where reports go.
}

var cli struct {
	Models modelsCmd `cmd help:"List machines that have NVRAM."`
	Dump   dumpCmd   `cmd help:"Dump an NVRAM image and its clock fields."`
	Init   initCmd   `cmd help:"Write a power on default image for a machine."`
	Poke   pokeCmd   `cmd help:"Change one byte of an NVRAM image."`
}

func main() {
	ctx := kong.Parse(&cli,
		kong.Name("nvrtool"),
		kong.Description("Inspect and edit RTC NVRAM images."))
	err := ctx.Run(&Globals{Out: os.Stdout})
	ctx.FatalIfErrorf(err)
}
