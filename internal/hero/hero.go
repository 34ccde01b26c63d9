package hero

// Config is the homepage hero content: headline, call to action and the
// three carousel images. It is stored as a single JSON value under the
// `hero_config` site setting.
type Config struct {
	Title      string `json:"title"`
	Subtitle   string `json:"subtitle"`
	ButtonText string `json:"buttonText"`
	Image1     string `json:"image1"`
	Image2     string `json:"image2"`
	Image3     string `json:"image3"`
}

// DefaultConfig is served while no hero_config row exists yet.
var DefaultConfig = Config{
	Title:      "Delícias com um clique",
	Subtitle:   "Bolos, doces e tortas artesanais com entrega rápida. Faça seu pedido pelo WhatsApp!",
	ButtonText: "Ver Catálogo",
	Image1:     "https://images.unsplash.com/photo-1578985545062-69928b1d9587?q=80&w=800&h=800&auto=format&fit=crop",
	Image2:     "https://images.unsplash.com/photo-1587668178277-295251f900ce?q=80&w=800&h=800&auto=format&fit=crop",
	Image3:     "https://images.unsplash.com/photo-1551024601-bec78aea704b?q=80&w=800&h=800&auto=format&fit=crop",
}
