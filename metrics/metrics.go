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

// Package metrics provides abstract metrics interfaces for the type registry
// and resolver, so the core packages do not depend on a specific
// instrumentation backend.
package metrics

// Timer measures the duration of an operation. Call ObserveDuration when
// the operation completes to record the elapsed time.
type Timer interface {
	// ObserveDuration records the elapsed time since the timer was created.
	ObserveDuration()
}

// Registry receives registry and resolver events.
type Registry interface {
	// TypeRegistered records a newly registered type in namespace.
	TypeRegistered(namespace string)
	// RegistrationConflict records a rejected registration.
	RegistrationConflict(namespace string)
	// Lookup records a name or Go type lookup and whether it hit.
	Lookup(hit bool)
	// ResolveDuration times one resolution handled by strategy.
	ResolveDuration(strategy string) Timer
	// ResolveFailed records a type no strategy could resolve.
	ResolveFailed()
}
