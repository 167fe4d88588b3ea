/*
 * PCRTC - Host machine models with NVRAM.
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

package models

import (
	"fmt"
	"sort"
	"strings"
)

// Model describes how a host machine wires the RTC.
type Model struct {
	Name string // Machine name.
	Key  string // NVRAM image name.
	Mask uint8  // Address mask, 63 or 127.
	IRQ  int    // Interrupt line.
}

const (
	small   = 0x3f
	large   = 0x7f
	irqAT   = 8
	irqAmst = 1 // Amstrad machines route the RTC to line 1.
)

var models = map[string]Model{}

func add(name, key string, mask uint8, irq int) {
	models[name] = Model{Name: name, Key: key, Mask: mask, IRQ: irq}
}

func init() {
	add("pc1512", "pc1512.nvr", small, irqAmst)
	add("pc1640", "pc1640.nvr", small, irqAmst)
	add("pc200", "pc200.nvr", small, irqAmst)
	add("pc2086", "pc2086.nvr", small, irqAmst)
	add("pc3086", "pc3086.nvr", small, irqAmst)
	add("ibmat", "at.nvr", small, irqAT)
	add("ibmps1_2011", "ibmps1_2011.nvr", large, irqAT)
	add("ibmps1_2121", "ibmps1_2121.nvr", large, irqAT)
	add("ibmps1_2121_isa", "ibmps1_2121_isa.nvr", large, irqAT)
	add("ibmps2_m30_286", "ibmps2_m30_286.nvr", large, irqAT)
	add("ibmps2_m50", "ibmps2_m50.nvr", small, irqAT)
	add("ibmps2_m55sx", "ibmps2_m55sx.nvr", small, irqAT)
	add("ibmps2_m80", "ibmps2_m80.nvr", small, irqAT)
	add("cmdpc30", "cmdpc30.nvr", large, irqAT)
	add("portableii", "portableii.nvr", small, irqAT)
	add("portableiii", "portableiii.nvr", small, irqAT)
	add("ami286", "ami286.nvr", large, irqAT)
	add("award286", "award286.nvr", large, irqAT)
	add("dell200", "dell200.nvr", large, irqAT)
	add("super286tr", "super286tr.nvr", large, irqAT)
	add("spc4200p", "spc4200p.nvr", large, irqAT)
	add("ibmat386", "at386.nvr", large, irqAT)
	add("deskpro386", "deskpro386.nvr", small, irqAT)
	add("portableiii386", "portableiii386.nvr", small, irqAT)
	add("megapc", "megapc.nvr", large, irqAT)
	add("megapcdx", "megapcdx.nvr", large, irqAT)
	add("ami386sx", "ami386.nvr", large, irqAT)
	add("ami486", "ami486.nvr", large, irqAT)
	add("win486", "win486.nvr", large, irqAT)
	add("pci486", "hot-433.nvr", large, irqAT)
	add("sis496", "sis496.nvr", large, irqAT)
	add("430vx", "430vx.nvr", large, irqAT)
	add("revenge", "revenge.nvr", large, irqAT)
	add("endeavor", "endeavor.nvr", large, irqAT)
	add("dtk386", "dtk386.nvr", large, irqAT)
	add("mr386dx_opti495", "mr386dx_opti495.nvr", large, irqAT)
	add("ami386dx_opti495", "ami386dx_opti495.nvr", large, irqAT)
	add("dtk486", "dtk486.nvr", large, irqAT)
	add("r418", "r418.nvr", large, irqAT)
	add("586mc1", "586mc1.nvr", large, irqAT)
	add("plato", "plato.nvr", large, irqAT)
	add("mb500n", "mb500n.nvr", large, irqAT)
	add("p54tp4xe", "p54tp4xe.nvr", large, irqAT)
	add("ap53", "ap53.nvr", large, irqAT)
	add("p55t2s", "p55t2s.nvr", large, irqAT)
	add("acerm3a", "acerm3a.nvr", large, irqAT)
	add("acerv35n", "acerv35n.nvr", large, irqAT)
	add("p55va", "p55va.nvr", large, irqAT)
	add("p55t2p4", "p55t2p4.nvr", large, irqAT)
	add("p55tvp4", "p55tvp4.nvr", large, irqAT)
	add("440fx", "440fx.nvr", large, irqAT)
	add("thor", "thor.nvr", large, irqAT)
	add("mrthor", "mrthor.nvr", large, irqAT)
	add("zappa", "zappa.nvr", large, irqAT)
	add("s1668", "tpatx.nvr", large, irqAT)
}

// Find model by name, case does not matter.
func Lookup(name string) (Model, error) {
	model, ok := models[strings.ToLower(name)]
	if !ok {
		return Model{}, fmt.Errorf("machine %s has no NVRAM", name)
	}
	return model, nil
}

// Return sorted list of model names.
func Names() []string {
	names := make([]string, 0, len(models))
	for name := range models {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
