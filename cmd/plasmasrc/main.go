/*
Copyright © 2024 the plasmasrc authors.
This file is part of plasmasrc.

plasmasrc is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

plasmasrc is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with plasmasrc.  If not, see <http://www.gnu.org/licenses/>.
*/

// Command plasmasrc is a command-line interface for the plasmasrc source
// models.
package main

import (
	"fmt"
	"os"

	"github.com/spatialmodel/plasmasrc/plasmautil"
)

func main() {
	if err := plasmautil.Root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(-1)
	}
}
