package seed

type item struct {
	name        string
	price       float64
	rating      float64
	description string
	images      []string
	category    string
	stock       int
}

func unsplash(ids ...string) []string {
	out := make([]string, len(ids))
	for i, id := range ids {
		out[i] = "https://images.unsplash.com/photo-" + id + "?w=500&q=80"
	}
	return out
}

var demo = []item{
	{"iPhone 15 Pro Max", 2499, 4.8, "Latest flagship Apple smartphone with advanced camera system",
		unsplash("1592286927505-1def25115558", "1511707267537-b85faf00021e"), "phones", 25},
	{"Samsung Galaxy S24 Ultra", 2199, 4.7, "Powerful Android flagship with S Pen stylus and excellent display",
		unsplash("1610945415295-d9bbf7e0b254", "1511707267537-b85faf00021e"), "phones", 30},
	{"MacBook Pro 16 M3 Max", 3999, 4.9, "Professional laptop with M3 Max chip for creative professionals",
		unsplash("1517336714731-489689fd1ca8", "1588872657840-790ff3bde791"), "laptops", 15},
	{"Dell XPS 15", 2499, 4.6, "High-performance ultrabook with InfinityEdge display",
		unsplash("1593642632823-8f785ba67e45", "1588872657840-790ff3bde791"), "laptops", 20},
	{"Sony WH-1000XM5", 799, 4.8, "Premium noise-cancelling wireless headphones with exceptional sound",
		unsplash("1505740420928-5e560c06d30e", "1487215078519-e21cc028cb29"), "headsets", 40},
	{"Bose QuietComfort 45", 649, 4.5, "Comfortable and lightweight noise-cancelling headphones",
		unsplash("1487215078519-e21cc028cb29", "1505740420928-5e560c06d30e"), "headsets", 35},
	{"Mechanical Gaming Keyboard RGB", 349, 4.7, "Professional mechanical keyboard with customizable RGB lighting",
		unsplash("1587829191301-26da3d115dc1", "1595225476942-d1262a7e00de"), "keyboards", 50},
	{"Logitech MX Keys", 249, 4.6, "Compact mechanical keyboard for professionals",
		unsplash("1595225476942-d1262a7e00de", "1587829191301-26da3d115dc1"), "keyboards", 45},
	{"Logitech MX Master 3S", 299, 4.8, "Advanced productivity mouse with customizable buttons",
		unsplash("1527814050087-3793815479db", "1542291026-7eec264c27ff"), "mouses", 55},
	{"Razer DeathAdder V3", 199, 4.5, "Gaming mouse with precision tracking and ergonomic design",
		unsplash("1542291026-7eec264c27ff", "1527814050087-3793815479db"), "mouses", 60},
	{`Samsung 4K Smart Monitor 32"`, 1299, 4.7, "Large 4K display with built-in smart TV features",
		unsplash("1527864550417-7fd91fc51a46", "1611532736579-6b16e2b50449"), "monitors", 18},
	{`Dell UltraSharp 27"`, 799, 4.6, "Professional color-accurate monitor for designers",
		unsplash("1611532736579-6b16e2b50449", "1527864550417-7fd91fc51a46"), "monitors", 22},
}
