// Package gnu implements GNU-style version ordering, the ordering used by
// autotools release tarballs and by "sort -V".
package gnu

/* Compare file names containing version numbers.

   Copyright (C) 1995 Ian Jackson <iwj10@cus.cam.ac.uk>
   Copyright (C) 2001 Anthony Towns <aj@azure.humbug.org.au>
   Copyright (C) 2008-2025 Free Software Foundation, Inc.

   This file is free software: you can redistribute it and/or modify
   it under the terms of the GNU Lesser General Public License as
   published by the Free Software Foundation, either version 3 of the
   License, or (at your option) any later version.

   This file is distributed in the hope that it will be useful,
   but WITHOUT ANY WARRANTY; without even the implied warranty of
   MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
   GNU Lesser General Public License for more details.

   You should have received a copy of the GNU Lesser General Public License
   along with this program.  If not, see <https://www.gnu.org/licenses/>.  */

import "slices"

// Compare compares two version strings. The result is negative if a < b,
// zero if a == b and positive if a > b.
func Compare(a, b string) int {
	return verrevcmp(a, b)
}

// Equal reports whether a and b name the same version, e.g. "2.4.06" and "2.4.6".
func Equal(a, b string) bool {
	return Compare(a, b) == 0
}

// Sort sorts versions in ascending order in place.
func Sort(versions []string) {
	slices.SortStableFunc(versions, Compare)
}

// Max returns the greatest of versions, or "" if there are none.
func Max(versions ...string) string {
	if len(versions) == 0 {
		return ""
	}
	return slices.MaxFunc(versions, Compare)
}

// StripPrefix removes a leading non-numeric tag prefix such as "v" or
// "release-", so that "release-2.20.2" compares like "2.20.2".
func StripPrefix(tag string) string {
	for i := 0; i < len(tag); i++ {
		if isDigit(tag[i]) {
			return tag[i:]
		}
	}
	return tag
}

// verrevcmp alternates between non-digit runs, compared by order(), and
// digit runs, compared numerically.
func verrevcmp(s1, s2 string) int {
	i, j := 0, 0
	for i < len(s1) || j < len(s2) {
		for (i < len(s1) && !isDigit(s1[i])) || (j < len(s2) && !isDigit(s2[j])) {
			c1, c2 := at(s1, i), at(s2, j)
			if d := order(c1) - order(c2); d != 0 {
				return d
			}
			i++
			j++
		}

		for i < len(s1) && s1[i] == '0' {
			i++
		}
		for j < len(s2) && s2[j] == '0' {
			j++
		}

		firstDiff := 0
		for i < len(s1) && j < len(s2) && isDigit(s1[i]) && isDigit(s2[j]) {
			if firstDiff == 0 {
				firstDiff = int(s1[i]) - int(s2[j])
			}
			i++
			j++
		}
		if i < len(s1) && isDigit(s1[i]) {
			return 1
		}
		if j < len(s2) && isDigit(s2[j]) {
			return -1
		}
		if firstDiff != 0 {
			return firstDiff
		}
	}
	return 0
}

func at(s string, i int) byte {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// order returns the sorting priority of a character:
// digits and NUL 0, letters their ASCII value, '~' -1, others ASCII value + 256.
func order(c byte) int {
	switch {
	case isDigit(c), c == 0:
		return 0
	case isAlpha(c):
		return int(c)
	case c == '~':
		return -1
	}
	return int(c) + 256
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
