// SPDX-License-Identifier: GPL-3.0-or-later

/*
Package matcher implements the column id matchers used by group definitions.

The wildcard syntax is:

	pattern:
	    { term }
	term:
	    '*'         matches any sequence of characters (including none)
	    c           matches character c

There is no escaping, '*' can not be matched literally.

Literal runs are matched from left to right. A run preceded by '*' is matched at its
leftmost occurrence after the previous run and there is no backtracking: "*aa" takes
"aa" at offset 0 of "aaa" and then rejects the trailing "a", although a later occurrence
would have matched.

An empty pattern matches only the empty string. A pattern consisting of '*' only matches
everything.
*/
package matcher
