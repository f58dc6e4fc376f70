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

package metrics

// Nop returns a Registry that discards every event.
func Nop() Registry { return nopRegistry{} }

type nopRegistry struct{}

func (nopRegistry) TypeRegistered(string)        {}
func (nopRegistry) RegistrationConflict(string)  {}
func (nopRegistry) Lookup(bool)                  {}
func (nopRegistry) ResolveDuration(string) Timer { return nopTimer{} }
func (nopRegistry) ResolveFailed()               {}

type nopTimer struct{}

func (nopTimer) ObserveDuration() {}

var _ Registry = nopRegistry{}
