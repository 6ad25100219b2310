package gst

import "strings"

var wordOnes = []string{
	"", "One", "Two", "Three", "Four", "Five", "Six", "Seven", "Eight", "Nine",
	"Ten", "Eleven", "Twelve", "Thirteen", "Fourteen", "Fifteen", "Sixteen",
	"Seventeen", "Eighteen", "Nineteen",
}

var wordTens = []string{
	"", "", "Twenty", "Thirty", "Forty", "Fifty", "Sixty", "Seventy", "Eighty", "Ninety",
}

// AmountInWords renders an integer rupee amount as Indian English words with
// lakh/crore grouping, e.g. 150000 -> "One Lakh Fifty Thousand Only".
// Zero and negative amounts render as "Zero Only".
func AmountInWords(n int64) string {
	if n <= 0 {
		return "Zero Only"
	}
	return indianWords(n) + " Only"
}

// indianWords converts n > 0 using crore/lakh/thousand/hundred grouping.
// "And" joins the final 1-99 remainder when any higher group is present,
// matching the en_IN convention.
func indianWords(n int64) string {
	var parts []string

	if n >= 10000000 {
		parts = append(parts, indianWords(n/10000000)+" Crore")
		n %= 10000000
	}
	if n >= 100000 {
		parts = append(parts, under100(n/100000)+" Lakh")
		n %= 100000
	}
	if n >= 1000 {
		parts = append(parts, under100(n/1000)+" Thousand")
		n %= 1000
	}
	if n >= 100 {
		parts = append(parts, wordOnes[n/100]+" Hundred")
		n %= 100
	}
	if n > 0 {
		if len(parts) > 0 {
			parts = append(parts, "And "+under100(n))
		} else {
			parts = append(parts, under100(n))
		}
	}

	return strings.Join(parts, " ")
}

func under100(n int64) string {
	if n < 20 {
		return wordOnes[n]
	}
	s := wordTens[n/10]
	if n%10 != 0 {
		s += " " + wordOnes[n%10]
	}
	return s
}
