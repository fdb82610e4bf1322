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

package intern

import "cmp"

// Compare orders handles by their values, not by owner identity.
func Compare[T cmp.Ordered](a, b *Handle[T]) int {
	return cmp.Compare(a.Value(), b.Value())
}

// Less reports whether a's value sorts before b's.
func Less[T cmp.Ordered](a, b *Handle[T]) bool {
	return cmp.Less(a.Value(), b.Value())
}

// CompareFunc orders handles by their values using cmpFn, for element types
// that are not cmp.Ordered.
func CompareFunc[T comparable](a, b *Handle[T], cmpFn func(T, T) int) int {
	return cmpFn(a.Value(), b.Value())
}
