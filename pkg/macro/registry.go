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
package macro

import (
	"sync"
)

// Registry maps macro names to their expansion functions.  The expected
// discipline is that registration completes before expansion begins; however,
// reads and writes are guarded so that a late registration cannot corrupt an
// expansion in progress.  Registering a name twice silently overwrites the
// earlier expansion.
type Registry struct {
	mux    sync.RWMutex
	macros map[string]Expansion
}

// NewRegistry constructs an (initially empty) macro registry.
func NewRegistry() *Registry {
	return &Registry{macros: make(map[string]Expansion)}
}

// Register a macro under a given name, overwriting any existing macro of the
// same name.
func (p *Registry) Register(name string, fn Expansion) {
	p.mux.Lock()
	defer p.mux.Unlock()
	//
	p.macros[name] = fn
}

// Lookup the expansion function registered under a given name (if any).
func (p *Registry) Lookup(name string) (Expansion, bool) {
	p.mux.RLock()
	defer p.mux.RUnlock()
	//
	fn, ok := p.macros[name]
	//
	return fn, ok
}
