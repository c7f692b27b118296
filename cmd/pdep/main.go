/*
Copyright © 2026 the PDep authors.
This file is part of PDep.

PDep is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

PDep is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with PDep.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command pdep is a command-line interface for the PDep pressure-dependent
// reaction rate calculator.
package main

import "github.com/spatialmodel/pdep/pdeputil"

func main() {
	pdeputil.Execute()
}
