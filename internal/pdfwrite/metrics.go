package pdfwrite

const (
	courierWidth = 600
	defaultWidth = 556
)

// helveticaWidths holds the Helvetica advance widths for ASCII 32 through
// 126, in thousandths of the font size (the AFM per-mille convention).
var helveticaWidths = [95]int{
	278, 278, 355, 556, 556, 889, 667, 191, // space ! " # $ % & '
	333, 333, 389, 584, 278, 333, 278, 278, // ( ) * + , - . /
	556, 556, 556, 556, 556, 556, 556, 556, // 0 1 2 3 4 5 6 7
	556, 556, 278, 278, 584, 584, 584, 556, // 8 9 : ; < = > ?
	1015, 667, 667, 722, 722, 667, 611, 778, // @ A B C D E F G
	722, 278, 500, 667, 556, 833, 722, 778, // H I J K L M N O
	667, 778, 722, 667, 611, 722, 667, 944, // P Q R S T U V W
	667, 667, 611, 278, 278, 278, 469, 556, // X Y Z [ \ ] ^ _
	333, 556, 556, 500, 556, 556, 278, 556, // ` a b c d e f g
	556, 222, 222, 500, 222, 833, 556, 556, // h i j k l m n o
	556, 556, 333, 500, 278, 556, 500, 722, // p q r s t u v w
	500, 500, 500, 334, 260, 334, 584, // x y z { | } ~
}

// StringWidth measures s at the given size, in points. Runes outside the
// measured ASCII range fall back to a representative width, which keeps
// centering stable for the occasional accented character.
func StringWidth(font Font, size float64, s string) float64 {
	total := 0
	for _, r := range s {
		total += runeWidth(font, r)
	}
	return float64(total) * size / 1000
}

func runeWidth(font Font, r rune) int {
	if font == Courier {
		return courierWidth
	}
	if r >= 32 && r <= 126 {
		return helveticaWidths[r-32]
	}
	return defaultWidth
}
