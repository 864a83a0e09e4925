package specgen

import "fmt"

const systemPrompt = "You are a mobile phone specifications database. Always respond with accurate, valid JSON only."

const specsTemplate = `You are a mobile phone specifications expert. For the phone "%s", provide accurate and detailed specifications.

Return ONLY valid JSON with this exact structure (use realistic values based on actual phone specs):
{
  "processor": "e.g., Snapdragon 8 Gen 3 or MediaTek Dimensity 9300",
  "ram": "e.g., 8GB or 12GB",
  "storage": "e.g., 128GB or 256GB",
  "battery": "e.g., 5000mAh",
  "main_camera": "e.g., 108MP + 12MP Ultra Wide + 5MP Macro",
  "selfie_camera": "e.g., 32MP",
  "display_size": "e.g., 6.7 inches",
  "display_type": "e.g., AMOLED 120Hz",
  "os": "e.g., Android 14 or iOS 17",
  "network": "e.g., 5G, 4G LTE",
  "weight": "e.g., 195g",
  "dimensions": "e.g., 163.3 x 77.9 x 8.9mm",
  "screen_resolution": "e.g., 1440 x 3200 pixels",
  "screen_protection": "e.g., Gorilla Glass Victus 2",
  "sim_support": "e.g., Dual SIM (Nano-SIM)",
  "release_date": "e.g., March 2024",
  "gpu": "e.g., Adreno 750",
  "card_slot": "e.g., Yes, microSD up to 1TB or No",
  "bluetooth": "e.g., 5.3",
  "wifi": "e.g., Wi-Fi 6E",
  "nfc": "e.g., Yes or No",
  "usb": "e.g., USB Type-C 3.2",
  "fast_charging": "e.g., 65W",
  "wireless_charging": "e.g., 15W or No",
  "front_flash": "e.g., Yes or No",
  "back_flash": "e.g., LED flash",
  "video_recording": "e.g., 4K@60fps, 8K@24fps"
}

Be accurate based on the actual phone model. If unsure, provide reasonable estimates based on similar phones in that price range/brand. Return ONLY valid JSON.`

func buildPrompt(phoneName string) string {
	return fmt.Sprintf(specsTemplate, phoneName)
}
